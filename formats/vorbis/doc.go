// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through jfreymuth/oggvorbis.
package vorbis
