package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joseph-ayodele/blueparser/internal/common"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := NewLoader(nil)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return l
}

func TestDecodeNormalizes(t *testing.T) {
	data := []byte(`{
		"text_items": [
			{"text": "PUMP\tSTATION  DATA\r\n", "confidence": 98.5, "bbox": {"left": 0.7, "top": 0.2, "width": 0.1, "height": 0.02}},
			{"text": "KEY:", "confidence": 90, "bbox": {"left": 0.05, "top": 0.1}, "page": 2}
		],
		"tables": [],
		"key_values": [{"key": "DWG NO", "value": "C-16"}]
	}`)
	doc, err := newLoader(t).Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items = %d", len(doc.Items))
	}
	if doc.Items[0].Text != "PUMP STATION DATA" {
		t.Errorf("text = %q", doc.Items[0].Text)
	}
	if doc.Items[0].Page != 1 || doc.Items[1].Page != 2 {
		t.Errorf("pages = %d, %d", doc.Items[0].Page, doc.Items[1].Page)
	}
	if doc.Items[0].BBox.Left != 0.7 || doc.Items[0].Confidence != 98.5 {
		t.Errorf("item = %+v", doc.Items[0])
	}
	if len(doc.KeyValues) != 1 || doc.KeyValues[0].Value != "C-16" {
		t.Errorf("key_values = %+v", doc.KeyValues)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing items", `{"tables": []}`},
		{"bbox out of range", `{"text_items": [{"text": "A", "bbox": {"left": 1.5, "top": 0.1}}]}`},
		{"text not string", `{"text_items": [{"text": 7, "bbox": {"left": 0.1, "top": 0.1}}]}`},
		{"confidence over 100", `{"text_items": [{"text": "A", "confidence": 101, "bbox": {"left": 0.1, "top": 0.1}}]}`},
	}
	l := newLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Decode([]byte(tt.data)); !errors.Is(err, common.ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDecodeEmptyItemsIsValidInput(t *testing.T) {
	doc, err := newLoader(t).Decode([]byte(`{"text_items": []}`))
	if err != nil || len(doc.Items) != 0 {
		t.Fatalf("doc=%+v err=%v", doc, err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	if err := os.WriteFile(path, []byte(`{"text_items": [{"text": "NOTES:", "bbox": {"left": 0.1, "top": 0.5}}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := newLoader(t).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].Text != "NOTES:" {
		t.Fatalf("doc = %+v", doc)
	}

	if _, err := newLoader(t).Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"  A  B  ":             "A B",
		"L1\r\nL2\rL3":         "L1\nL2\nL3",
		"A\n\n\n\nB":           "A\n\nB",
		"TAB\tSEPARATED\t\tX ": "TAB SEPARATED X",
		"EL 01":                "EL 01",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
