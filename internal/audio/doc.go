// Package audio converts synthesized speech between its wire and playable forms.
// Raw 16-bit little-endian PCM from the speech endpoint is decoded into per-channel
// float samples, and decoded buffers can be written back out as WAV files for
// delivery to clients that cannot play raw PCM.
package audio
