// Package srt formats, synthesizes, cleans, and validates SubRip subtitle
// documents.
//
// Subtitles come from one of two places: the speech-to-text engine's own SRT
// output, which is cleaned of inline timestamp annotations, or a plain
// transcript body, which is segmented on sentence punctuation and paced with
// fixed-length slots. Synthetic pacing bears no relation to the spoken audio;
// it is an approximation for transcripts without timing data.
package srt
