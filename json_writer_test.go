package investo

import "testing"

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps append order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("on", "2024-02-01")
		w.Append("ACME", 50.5)
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"on":"2024-02-01","ACME":50.5}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
