// Package audio holds PCM helpers for the 16-bit little-endian mono audio
// fed to the engine.
package audio

import (
	"encoding/binary"
	"math"
)

const BytesPerSample = 2

func PCMBytesToInt16(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*BytesPerSample:]))
	}
	return samples
}

func Int16ToPCMBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*BytesPerSample:], uint16(s))
	}
	return pcm
}

// Resampler converts a PCM stream between sample rates with linear
// interpolation. State carries across calls, so chunk boundaries do not
// change the output and an odd trailing byte waits for the next chunk.
type Resampler struct {
	step float64
	pos  float64
	prev int16

	carry []byte
}

func NewResampler(fromRate, toRate int) *Resampler {
	return &Resampler{step: float64(fromRate) / float64(toRate)}
}

// Passthrough reports whether the rates are equal.
func (r *Resampler) Passthrough() bool {
	return r.step == 1
}

func (r *Resampler) Process(chunk []byte) []byte {
	data := chunk
	if len(r.carry) > 0 {
		data = append(r.carry, chunk...)
		r.carry = nil
	}
	if len(data)%BytesPerSample != 0 {
		r.carry = []byte{data[len(data)-1]}
		data = data[:len(data)-1]
	}
	if r.Passthrough() {
		return data
	}

	in := PCMBytesToInt16(data)
	if len(in) == 0 {
		return nil
	}

	at := func(i int) float64 {
		if i < 0 {
			return float64(r.prev)
		}
		return float64(in[i])
	}

	last := len(in) - 1
	out := make([]int16, 0, int(math.Ceil(float64(len(in))/r.step))+1)
	for {
		i := int(math.Floor(r.pos))
		frac := r.pos - float64(i)
		if i > last || (frac > 0 && i+1 > last) {
			break
		}
		v := at(i)
		if frac > 0 {
			v += (at(i+1) - v) * frac
		}
		out = append(out, clamp(v))
		r.pos += r.step
	}

	r.pos -= float64(len(in))
	r.prev = in[last]
	return Int16ToPCMBytes(out)
}

func clamp(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
