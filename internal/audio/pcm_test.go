package audio

import (
	"bytes"
	"testing"
)

func TestPCMBytesToInt16(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xff, 0x7f, 0x00, 0x80, 0x01}
	got := PCMBytesToInt16(pcm)

	want := []int16{0, 32767, -32768}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestInt16ToPCMBytes_RoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768, 1234}
	got := PCMBytesToInt16(Int16ToPCMBytes(samples))
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestResampler_Passthrough(t *testing.T) {
	r := NewResampler(16000, 16000)
	if !r.Passthrough() {
		t.Fatal("equal rates should pass through")
	}

	in := Int16ToPCMBytes([]int16{1, 2, 3})
	if got := r.Process(in); !bytes.Equal(got, in) {
		t.Errorf("Process() = %v, want %v", got, in)
	}
}

func TestResampler_CarriesOddByte(t *testing.T) {
	r := NewResampler(16000, 16000)
	pcm := Int16ToPCMBytes([]int16{100, 200})

	first := r.Process(pcm[:3])
	second := r.Process(pcm[3:])

	if !bytes.Equal(append(first, second...), pcm) {
		t.Errorf("got %v then %v, want %v", first, second, pcm)
	}
}

func TestResampler_Upsample(t *testing.T) {
	r := NewResampler(8000, 16000)
	got := PCMBytesToInt16(r.Process(Int16ToPCMBytes([]int16{0, 100, 200})))

	want := []int16{0, 50, 100, 150, 200}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResampler_Downsample(t *testing.T) {
	r := NewResampler(48000, 16000)
	got := PCMBytesToInt16(r.Process(Int16ToPCMBytes([]int16{0, 1, 2, 3, 4, 5, 6})))

	want := []int16{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResampler_ChunkingDoesNotChangeOutput(t *testing.T) {
	samples := make([]int16, 97)
	for i := range samples {
		samples[i] = int16(i * 37 % 1000)
	}
	pcm := Int16ToPCMBytes(samples)

	tests := []struct {
		name     string
		from, to int
	}{
		{"upsample", 8000, 16000},
		{"downsample", 48000, 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			whole := NewResampler(tt.from, tt.to).Process(pcm)

			chunked := NewResampler(tt.from, tt.to)
			var got []byte
			for start := 0; start < len(pcm); start += 13 {
				end := min(start+13, len(pcm))
				got = append(got, chunked.Process(pcm[start:end])...)
			}

			if !bytes.Equal(got, whole) {
				t.Errorf("chunked output differs: %d bytes vs %d bytes", len(got), len(whole))
			}
		})
	}
}

func TestResampler_Empty(t *testing.T) {
	r := NewResampler(8000, 16000)
	if got := r.Process(nil); len(got) != 0 {
		t.Errorf("Process(nil) = %v, want empty", got)
	}
}
