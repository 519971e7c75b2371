package rope

import "testing"

// FuzzRoundTrip tests rope creation from arbitrary strings.
func FuzzRoundTrip(f *testing.F) {
	f.Add("")
	f.Add("hello")
	f.Add("hello\nworld")
	f.Add("日本語")
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, s string) {
		for _, c := range constructions {
			r := New(s, WithConstruction(c))
			if r.Len() != len(s) {
				t.Errorf("%s: length mismatch: got %d, want %d", c, r.Len(), len(s))
			}
			if r.Result() != s {
				t.Errorf("%s: content mismatch", c)
			}
		}
	})
}

// FuzzProcess tests a single move against string surgery.
func FuzzProcess(f *testing.F) {
	f.Add("hlelowrold", 1, 1, 2)
	f.Add("abcdef", 0, 1, 1)
	f.Add("abcdef", 4, 5, 0)
	f.Add("a", 0, 0, 0)
	f.Add("", 0, 0, 0)

	f.Fuzz(func(t *testing.T, initial string, i, j, k int) {
		r := New(initial)
		err := r.Process(i, j, k)

		lo, hi := min(i, j), max(i, j)
		valid := lo >= 0 && hi < len(initial) && k >= 0 && k <= len(initial)-(hi-lo+1)
		if !valid {
			if err == nil {
				t.Fatalf("Process(%d, %d, %d) on %d bytes should fail", i, j, k, len(initial))
			}
			if r.Result() != initial {
				t.Fatal("failed Process modified the rope")
			}
			return
		}

		if err != nil {
			t.Fatalf("Process(%d, %d, %d): %v", i, j, k, err)
		}
		if got, want := r.Result(), moveRange(initial, i, j, k); got != want {
			t.Errorf("Process(%d, %d, %d) = %q, want %q", i, j, k, got, want)
		}
		if err := r.Validate(); err != nil {
			t.Error(err)
		}
	})
}

// FuzzExtract tests range reads.
func FuzzExtract(f *testing.F) {
	f.Add("hello world", 0, 4)
	f.Add("hello world", 6, 10)
	f.Add("abc", 2, 0)

	f.Fuzz(func(t *testing.T, initial string, i, j int) {
		r := New(initial)
		got, err := r.Extract(i, j)

		lo, hi := min(i, j), max(i, j)
		if lo < 0 || hi >= len(initial) {
			if err == nil {
				t.Fatalf("Extract(%d, %d) on %d bytes should fail", i, j, len(initial))
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if want := initial[lo : hi+1]; got != want {
			t.Errorf("Extract(%d, %d) = %q, want %q", i, j, got, want)
		}
		if r.Result() != initial {
			t.Error("Extract modified the rope")
		}
	})
}
