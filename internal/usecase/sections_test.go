package usecase

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSectionsLoader(t *testing.T) {
	doc := `sections:
  - label: Precious Metals
    tickers:
      - symbol: "GC=F"
        name: Gold
      - symbol: "SI=F"
        name: Silver
  - label: Crypto
    tickers:
      - symbol: BTC-USD
        name: Bitcoin
        crypto: true
`
	path := filepath.Join(t.TempDir(), "sections.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	sections, err := FileSectionsLoader(path)()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Label != "Precious Metals" || len(sections[0].Tickers) != 2 {
		t.Fatalf("unexpected first section: %+v", sections[0])
	}
	if !sections[1].Tickers[0].Crypto {
		t.Fatal("crypto flag not parsed")
	}
}

func TestFileSectionsLoaderMissingFile(t *testing.T) {
	_, err := FileSectionsLoader(filepath.Join(t.TempDir(), "absent.yaml"))()
	if err == nil {
		t.Fatal("expected error for missing sections file")
	}
}

func TestFileSectionsLoaderRereadsOnEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.yaml")
	write := func(doc string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("sections:\n  - label: A\n    tickers:\n      - symbol: URA\n        name: Uranium ETF\n")
	loader := FileSectionsLoader(path)

	sections, err := loader()
	if err != nil || len(sections) != 1 {
		t.Fatalf("first load: %v, %d sections", err, len(sections))
	}

	write("sections: []\n")
	sections, err = loader()
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("loader must pick up edits without restart, got %d sections", len(sections))
	}
}
