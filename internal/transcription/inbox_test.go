package transcription

import (
	"sync"
	"testing"
)

func TestInbox_DeliversInOrderAndCopies(t *testing.T) {
	in := NewInbox(4, discardLogger())

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(func(buf []byte, n int) {
			got = append(got, string(buf[:n]))
		})
	}()

	cb := in.Callback()
	buf := []byte("first")
	cb(buf, len(buf))
	copy(buf, "xxxxx")
	cb([]byte("second"), 3)

	in.Close()
	<-done

	if len(got) != 2 || got[0] != "first" || got[1] != "sec" {
		t.Errorf("delivered = %q", got)
	}
}

func TestInbox_PushAfterClose(t *testing.T) {
	in := NewInbox(1, discardLogger())
	in.Close()
	in.Close()

	if in.Push([]byte("late"), 4) {
		t.Error("Push() after Close() = true")
	}
	if in.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", in.Dropped())
	}
}

func TestInbox_ConcurrentProducers(t *testing.T) {
	in := NewInbox(2, discardLogger())

	count := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(func([]byte, int) { count++ })
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				in.Push([]byte{byte(j)}, 1)
			}
		}()
	}
	wg.Wait()
	in.Close()
	<-done

	if count != 400 {
		t.Errorf("delivered = %d, want 400", count)
	}
}

func TestInbox_CopiesOnlyLogicalLength(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		n       int
		wantLen int
	}{
		{"shorter than buffer", []byte("hello world"), 5, 5},
		{"whole buffer", []byte("hello"), 5, 5},
		{"negative length", []byte("hello"), -1, 0},
		{"past the buffer", []byte("hi"), 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInbox(1, discardLogger())
			in.Push(tt.buf, tt.n)
			in.Close()

			var gotBuf []byte
			gotN := 0
			in.Run(func(buf []byte, n int) {
				gotBuf, gotN = buf, n
			})

			if len(gotBuf) != tt.wantLen {
				t.Errorf("copied %d bytes, want %d", len(gotBuf), tt.wantLen)
			}
			if gotN != tt.n {
				t.Errorf("n = %d, want %d", gotN, tt.n)
			}
		})
	}
}
