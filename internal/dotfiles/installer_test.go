package dotfiles

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zshsetup/internal/failure"
	"zshsetup/internal/system"
)

const suffix = ".pre-zshsetup-backup"

func target(content string) Target {
	return Target{Name: "shellrc", Path: "/home/u/.shellrc", Content: []byte(content), Mode: 0o644}
}

func read(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	return ok
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		obs     Observed
		backups bool
		want    Outcome
	}{
		{"missing destination", Observed{}, true, Created},
		{"missing destination with stale backup", Observed{BackupExists: true}, true, Created},
		{"identical content", Observed{DestExists: true, DestMatches: true}, true, Unchanged},
		{"identical content without backups", Observed{DestExists: true, DestMatches: true}, false, Unchanged},
		{"differs, no backup yet", Observed{DestExists: true}, true, BackedUp},
		{"differs, backup exists", Observed{DestExists: true, BackupExists: true}, true, Replaced},
		{"differs, backups disabled", Observed{DestExists: true}, false, Replaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.obs, tt.backups))
		})
	}
}

func TestInstall(t *testing.T) {
	t.Run("it should create a missing destination", func(t *testing.T) {
		// Arrange
		fs := afero.NewMemMapFs()
		inst := NewInstaller(fs, suffix, true)

		// Act
		outcome, err := inst.Install(target("echo new"))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, Created, outcome)
		assert.Equal(t, "echo new", read(t, fs, "/home/u/.shellrc"))
		assert.False(t, exists(t, fs, "/home/u/.shellrc"+suffix))
	})

	t.Run("it should back up once and keep the first backup", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("echo old"), 0o600))
		inst := NewInstaller(fs, suffix, true)

		first, err := inst.Install(target("echo new"))
		require.NoError(t, err)
		assert.Equal(t, BackedUp, first)
		assert.Equal(t, "echo new", read(t, fs, "/home/u/.shellrc"))
		assert.Equal(t, "echo old", read(t, fs, "/home/u/.shellrc"+suffix))

		second, err := inst.Install(target("echo new2"))
		require.NoError(t, err)
		assert.Equal(t, Replaced, second)
		assert.Equal(t, "echo new2", read(t, fs, "/home/u/.shellrc"))
		assert.Equal(t, "echo old", read(t, fs, "/home/u/.shellrc"+suffix))
	})

	t.Run("it should not back up identical content", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("same"), 0o644))
		inst := NewInstaller(fs, suffix, true)

		outcome, err := inst.Install(target("same"))

		require.NoError(t, err)
		assert.Equal(t, Unchanged, outcome)
		assert.False(t, exists(t, fs, "/home/u/.shellrc"+suffix))
	})

	t.Run("it should converge on repeated runs", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("mine"), 0o644))
		inst := NewInstaller(fs, suffix, true)

		_, err := inst.Install(target("managed"))
		require.NoError(t, err)
		again, err := inst.Install(target("managed"))
		require.NoError(t, err)

		assert.Equal(t, Unchanged, again)
		entries, err := afero.ReadDir(fs, "/home/u")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("it should overwrite without backup when backups are disabled", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("mine"), 0o644))
		inst := NewInstaller(fs, suffix, false)

		outcome, err := inst.Install(target("managed"))

		require.NoError(t, err)
		assert.Equal(t, Replaced, outcome)
		assert.False(t, exists(t, fs, "/home/u/.shellrc"+suffix))
	})

	t.Run("it should keep the mode of an existing file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("mine"), 0o600))
		inst := NewInstaller(fs, suffix, true)

		_, err := inst.Install(target("managed"))

		require.NoError(t, err)
		info, err := fs.Stat("/home/u/.shellrc")
		require.NoError(t, err)
		assert.Equal(t, "-rw-------", info.Mode().Perm().String())
	})

	t.Run("it should leave no temp files behind", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		inst := NewInstaller(fs, suffix, true)

		_, err := inst.Install(target("managed"))

		require.NoError(t, err)
		entries, err := afero.ReadDir(fs, "/home/u")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ".shellrc", entries[0].Name())
	})

	t.Run("filesystem errors are classified", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		inst := NewInstaller(fs, suffix, true)

		_, err := inst.Install(target("managed"))

		require.Error(t, err)
		assert.Equal(t, failure.Filesystem, failure.KindOf(err))
	})
}

func TestInstallDryRunLeavesBaseUntouched(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/home/u/.shellrc", []byte("echo old"), 0o644))
	overlay := system.DryRunFileSystem(base)
	inst := NewInstaller(overlay, suffix, true)

	outcome, err := inst.Install(target("echo new"))

	require.NoError(t, err)
	assert.Equal(t, BackedUp, outcome)
	assert.Equal(t, "echo new", read(t, overlay, "/home/u/.shellrc"))
	assert.Equal(t, "echo old", read(t, base, "/home/u/.shellrc"))
	assert.False(t, exists(t, base, "/home/u/.shellrc"+suffix))
}

func TestPlanHasNoSideEffects(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("mine"), 0o644))
	inst := NewInstaller(fs, suffix, true)

	outcome, err := inst.Plan(target("managed"))

	require.NoError(t, err)
	assert.Equal(t, BackedUp, outcome)
	assert.Equal(t, "mine", read(t, fs, "/home/u/.shellrc"))
	assert.False(t, exists(t, fs, "/home/u/.shellrc"+suffix))
}

func TestRestore(t *testing.T) {
	t.Run("it should restore the original and remove the backup", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("echo old"), 0o644))
		inst := NewInstaller(fs, suffix, true)
		_, err := inst.Install(target("echo new"))
		require.NoError(t, err)

		outcome, err := inst.Restore(target("echo new"), true)

		require.NoError(t, err)
		assert.Equal(t, Restored, outcome)
		assert.Equal(t, "echo old", read(t, fs, "/home/u/.shellrc"))
		assert.False(t, exists(t, fs, "/home/u/.shellrc"+suffix))
	})

	t.Run("it should remove a file it created", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		inst := NewInstaller(fs, suffix, true)
		_, err := inst.Install(target("managed"))
		require.NoError(t, err)

		outcome, err := inst.Restore(target("managed"), false)

		require.NoError(t, err)
		assert.Equal(t, Removed, outcome)
		assert.False(t, exists(t, fs, "/home/u/.shellrc"))
	})

	t.Run("it should remove an edited file recorded as owned", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("edited"), 0o644))
		inst := NewInstaller(fs, suffix, true)

		outcome, err := inst.Restore(target("managed"), true)

		require.NoError(t, err)
		assert.Equal(t, Removed, outcome)
	})

	t.Run("it should keep a foreign file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/home/u/.shellrc", []byte("theirs"), 0o644))
		inst := NewInstaller(fs, suffix, true)

		outcome, err := inst.Restore(target("managed"), false)

		require.NoError(t, err)
		assert.Equal(t, Kept, outcome)
		assert.Equal(t, "theirs", read(t, fs, "/home/u/.shellrc"))
	})

	t.Run("nothing present", func(t *testing.T) {
		inst := NewInstaller(afero.NewMemMapFs(), suffix, true)

		outcome, err := inst.Restore(target("managed"), true)

		require.NoError(t, err)
		assert.Equal(t, Absent, outcome)
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "backed up", BackedUp.String())
	assert.Equal(t, "kept", Kept.String())
}
