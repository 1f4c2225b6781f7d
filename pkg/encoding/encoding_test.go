package encoding

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"utf-8", true, false},
		{"UTF8", true, false},
		{"euc-kr", false, false},
		{"shift-jis", false, false},
		{"iso-8859-1", false, false},
		{"koi8-r", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Lookup(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoding) {
					t.Errorf("expected ErrUnknownEncoding, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (enc == nil) != tt.wantNil {
				t.Errorf("expected nil encoding %v, got %v", tt.wantNil, enc)
			}
		})
	}
}

func TestNewReaderEUCKR(t *testing.T) {
	enc, _ := Lookup("euc-kr")
	// "usemtl 가" in EUC-KR
	src := []byte{'u', 's', 'e', 'm', 't', 'l', ' ', 0xB0, 0xA1}
	data, err := io.ReadAll(NewReader(strings.NewReader(string(src)), enc))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "usemtl 가" {
		t.Errorf("expected 'usemtl 가', got %q", data)
	}
}

func TestNewReaderPassthrough(t *testing.T) {
	r := strings.NewReader("v 1 2 3")
	if NewReader(r, nil) != io.Reader(r) {
		t.Error("expected reader to be returned unchanged for utf-8")
	}
}

func TestNewReaderLatin1(t *testing.T) {
	enc, _ := Lookup("latin1")
	data, err := io.ReadAll(NewReader(strings.NewReader("newmtl caf\xe9"), enc))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "newmtl café" {
		t.Errorf("expected 'newmtl café', got %q", data)
	}
}
