package output

import (
	"bytes"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)
	if err := formatter.Format(sampleTable(t)); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	want := `{"name":"alice","amount":1.5,"active":true,"day":"2024-01-02","at":"2024-01-02 10:30:00"}` + "\n" +
		`{"name":"bob","amount":null,"active":false,"day":null,"at":null}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONFormatterISODates(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)
	formatter.SetISODates(true)
	if err := formatter.Format(sampleTable(t)); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"at":"2024-01-02T10:30:00Z"`)) {
		t.Errorf("expected RFC 3339 date-time, got:\n%s", buf.String())
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTableFormatter(&buf).Format(sampleTable(t)); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"name", "amount", "alice", "1.5"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
