package system

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return fs
}

func TestProbe_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		goos       string
		goarch     string
		files      map[string]string
		wantKind   Kind
		wantFamily Family
		wantDistro string
	}{
		{
			name:       "apple silicon",
			goos:       "darwin",
			goarch:     "arm64",
			wantKind:   MacOS,
			wantDistro: "macos",
		},
		{
			name:       "intel mac",
			goos:       "darwin",
			goarch:     "amd64",
			wantKind:   MacOS,
			wantDistro: "macos",
		},
		{
			name:       "ubuntu by ID",
			goos:       "linux",
			files:      map[string]string{osReleasePath: "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n"},
			wantKind:   Linux,
			wantFamily: Debian,
			wantDistro: "ubuntu",
		},
		{
			name:       "quoted ID",
			goos:       "linux",
			files:      map[string]string{osReleasePath: "ID=\"fedora\"\n"},
			wantKind:   Linux,
			wantFamily: RedHat,
			wantDistro: "fedora",
		},
		{
			name:       "unknown ID resolved through ID_LIKE",
			goos:       "linux",
			files:      map[string]string{osReleasePath: "ID=nobara\nID_LIKE=\"rhel fedora\"\n"},
			wantKind:   Linux,
			wantFamily: RedHat,
			wantDistro: "nobara",
		},
		{
			name:       "no os-release falls back to marker files",
			goos:       "linux",
			files:      map[string]string{"/etc/arch-release": ""},
			wantKind:   Linux,
			wantFamily: Arch,
		},
		{
			name:       "nothing recognisable",
			goos:       "linux",
			files:      map[string]string{osReleasePath: "ID=plan9ish\n"},
			wantKind:   Linux,
			wantFamily: UnknownFamily,
			wantDistro: "plan9ish",
		},
		{
			name:     "windows is unsupported",
			goos:     "windows",
			wantKind: Unsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			probe := Probe{GOOS: tt.goos, GOARCH: tt.goarch, FS: memFS(t, tt.files)}

			// Act
			got := probe.Detect()

			// Assert
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantFamily, got.Family)
			assert.Equal(t, tt.wantDistro, got.Distro)
		})
	}
}

func TestPlatform_String(t *testing.T) {
	assert.Equal(t, "macos (apple silicon)", Platform{Kind: MacOS, Arch: "arm64"}.String())
	assert.Equal(t, "macos (intel)", Platform{Kind: MacOS, Arch: "amd64"}.String())
	assert.Equal(t, "linux (ubuntu, debian family)", Platform{Kind: Linux, Distro: "ubuntu", Family: Debian}.String())
	assert.Equal(t, "unsupported", Platform{}.String())
}

func TestProbe_DetectHasNoSideEffects(t *testing.T) {
	fs := memFS(t, map[string]string{osReleasePath: "ID=debian\n"})
	probe := Probe{GOOS: "linux", GOARCH: "amd64", FS: afero.NewReadOnlyFs(fs)}

	first := probe.Detect()
	second := probe.Detect()

	assert.Equal(t, first, second)
}
