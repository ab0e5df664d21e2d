package cli

import "testing"

func TestRenderFormat(t *testing.T) {
	tests := []struct {
		name    string
		opts    renderOpts
		want    string
		wantErr bool
	}{
		{"stdout defaults to dot", renderOpts{}, formatDOT, false},
		{"dot extension", renderOpts{output: "g.dot"}, formatDOT, false},
		{"gv extension", renderOpts{output: "g.gv"}, formatDOT, false},
		{"svg extension", renderOpts{output: "g.SVG"}, formatSVG, false},
		{"png extension", renderOpts{output: "out/g.png"}, formatPNG, false},
		{"flag wins", renderOpts{output: "g.txt", format: "svg"}, formatSVG, false},
		{"unknown extension", renderOpts{output: "g.pdf"}, "", true},
		{"unknown flag", renderOpts{format: "jpeg"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderFormat(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("renderFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("renderFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
