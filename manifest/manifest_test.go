package manifest

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"cargo", Cargo, false},
		{"NPM", Npm, false},
		{" npm ", Npm, false},
		{"pip", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("error = %v, want ErrUnknownKind", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackageManager_JSON(t *testing.T) {
	data := []byte(`[{"type":"cargo"},{"type":"npm","path":"npm","publish":true}]`)

	var pms []PackageManager
	if err := json.Unmarshal(data, &pms); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []PackageManager{
		{Kind: Cargo},
		{Kind: Npm, Path: "npm", Publish: true},
	}
	if !reflect.DeepEqual(pms, want) {
		t.Errorf("pms = %+v, want %+v", pms, want)
	}

	out, err := json.Marshal(pms[1])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"type":"npm","path":"npm","publish":true}` {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"type":"pip"}`), &PackageManager{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Unmarshal unknown type error = %v, want ErrUnknownKind", err)
	}
}

func TestPaths(t *testing.T) {
	pms := []PackageManager{
		{Kind: Cargo, Path: "./"},
		{Kind: Npm, Path: "./npm"},
		{Kind: Npm, Path: "npm"},
	}

	got := Paths(pms)
	want := []string{"Cargo.toml", "Cargo.lock", "npm/package.json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths = %v, want %v", got, want)
	}

	if got := Paths(nil); len(got) != 0 {
		t.Errorf("Paths(nil) = %v, want empty", got)
	}
}

func TestPackageManager_Paths_Backslashes(t *testing.T) {
	pm := PackageManager{Kind: Npm, Path: `.\packages\web`}
	want := []string{"packages/web/package.json"}
	if got := pm.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths = %v, want %v", got, want)
	}
}
