package options

import (
	"flag"
	"testing"
)

func TestDefaults(t *testing.T) {
	o := Default()
	if *o.Width != 800 || *o.Height != 800 {
		t.Errorf("expected 800x800, got %dx%d", *o.Width, *o.Height)
	}
	if *o.Title != "Game Engine" {
		t.Errorf("unexpected title %q", *o.Title)
	}
	if *o.Record {
		t.Error("recording should be off by default")
	}
	if *o.Verbose {
		t.Error("verbose should be off by default")
	}
	if err := o.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestBindParsesFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := Bind(fs)
	err := fs.Parse([]string{"-width", "1024", "-vertex", "a.vs", "-fragment", "b.fs", "-record", "-frames", "10"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *o.Width != 1024 || *o.Height != 800 {
		t.Errorf("unexpected size %dx%d", *o.Width, *o.Height)
	}
	if *o.VertexShader != "a.vs" || *o.FragmentShader != "b.fs" {
		t.Errorf("unexpected shader paths %q %q", *o.VertexShader, *o.FragmentShader)
	}
	if !*o.Record || *o.Frames != 10 {
		t.Errorf("expected record with 10 frames, got %v %d", *o.Record, *o.Frames)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"zero width", []string{"-width", "0"}, true},
		{"negative height", []string{"-height", "-5"}, true},
		{"empty vertex", []string{"-vertex", " "}, true},
		{"empty fragment", []string{"-fragment", ""}, true},
		{"record zero frames", []string{"-record", "-frames", "0"}, true},
		{"record zero fps", []string{"-record", "-fps", "0"}, true},
		{"record no output", []string{"-record", "-output", ""}, true},
		{"zero frames without record", []string{"-frames", "0"}, false},
		{"headless without record", []string{"-headless"}, true},
		{"headless record", []string{"-headless", "-record"}, false},
		{"record odd width", []string{"-record", "-width", "801"}, true},
		{"record odd height", []string{"-record", "-height", "599"}, true},
		{"odd size without record", []string{"-width", "801", "-height", "599"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.name, flag.ContinueOnError)
			o := Bind(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
