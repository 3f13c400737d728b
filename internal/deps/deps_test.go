// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package deps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrokit/nitrokit/internal/testutil"
)

var backupTime = time.Date(2025, 5, 26, 12, 30, 45, 0, time.UTC)

func newUpdater(t *testing.T, fr *testutil.FakeRunner, files map[string]string) *Updater {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, files)
	u := NewUpdater(fr, dir)
	u.Now = func() time.Time { return backupTime }
	return u
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{"composer.json": "{}", "package.json": "{}", "README.md": ""})
	got := Detect(dir)
	assert.Equal(t, []Manifest{{"package.json", Node}, {"composer.json", PHP}}, got)
}

func TestRun_NoManifests(t *testing.T) {
	u := newUpdater(t, testutil.NewFakeRunner(), nil)
	_, err := u.Run(context.Background())
	assert.True(t, errors.Is(err, ErrNoManifests))
}

func TestNodePackageManager(t *testing.T) {
	fr := testutil.NewFakeRunner().Missing("pnpm")
	u := newUpdater(t, fr, map[string]string{"package.json": "{}"})
	pm, ok := u.NodePackageManager(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "yarn", pm, "first installed manager wins without a lockfile")

	testutil.WriteFiles(t, u.Dir, map[string]string{"pnpm-lock.yaml": ""})
	pm, _ = u.NodePackageManager(context.Background())
	assert.Equal(t, "pnpm", pm, "lockfile wins even when the tool is missing")

	none := newUpdater(t, testutil.NewFakeRunner().Missing("pnpm", "yarn", "npm"), nil)
	_, ok = none.NodePackageManager(context.Background())
	assert.False(t, ok)
}

func TestRun_NodeWithYarnViaNpx(t *testing.T) {
	fr := testutil.NewFakeRunner().
		Missing("yarn").
		On("npx yarn audit", "3 vulnerabilities found - Packages audited: 120", 0)
	u := newUpdater(t, fr, map[string]string{
		"package.json": `{"dependencies":{"react":"^18.2.0"},"devDependencies":{"jest":"^29.0.0"}}`,
		"yarn.lock":    "# yarn lockfile v1\n",
	})

	reports, err := u.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	rep := reports[0]

	assert.Equal(t, Node, rep.Ecosystem)
	assert.Equal(t, "yarn", rep.PackageManager)
	assert.Equal(t, []string{"jest@^29.0.0 (dev)", "react@^18.2.0"}, rep.Dependencies)
	assert.Equal(t, []string{"package.json", "yarn.lock"}, rep.BackedUp)
	assert.FileExists(t, filepath.Join(u.Dir, "backup", "20250526123045", "yarn.lock"))

	for _, want := range []string{"npx yarn upgrade", "npx yarn outdated", "npx yarn audit"} {
		assert.True(t, fr.Called(want), "missing call %q in %v", want, fr.CallLines())
	}
	require.Len(t, rep.Steps, 3)
	assert.Equal(t, "security audit reported vulnerabilities", rep.Steps[2].Warning)
	assert.False(t, rep.Failed())
}

func TestRun_NpmOutdatedExitIsNotAFailure(t *testing.T) {
	fr := testutil.NewFakeRunner().
		On("npm outdated", "lodash  4.17.20  4.17.21", 1).
		On("npm audit", "found 0 vulnerabilities", 0)
	u := newUpdater(t, fr, map[string]string{"package.json": "{}", "package-lock.json": "{}"})

	reports, err := u.Run(context.Background())
	require.NoError(t, err)
	steps := reports[0].Steps
	require.Len(t, steps, 3)
	assert.True(t, steps[1].Success)
	assert.Empty(t, steps[2].Warning)
}

func TestRun_MultipleEcosystems(t *testing.T) {
	fr := testutil.NewFakeRunner().
		Missing("cargo").
		On("composer update", "Your requirements could not be resolved", 2)
	u := newUpdater(t, fr, map[string]string{
		"Cargo.toml":       "[package]\nname = \"x\"\nversion = \"0.1.0\"\n\n[dependencies]\nserde = \"1.0\"\n",
		"requirements.txt": "# pinned\nrequests==2.31.0\n\nflask>=2\n",
		"composer.json":    `{"require":{"php":">=8.1"},"require-dev":{"phpunit/phpunit":"^10"}}`,
	})

	reports, err := u.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	rust, py, php := reports[0], reports[1], reports[2]
	assert.Equal(t, []string{"serde = 1.0"}, rust.Dependencies)
	require.Len(t, rust.Steps, 1)
	assert.True(t, rust.Steps[0].Skipped)
	assert.Equal(t, []string{"Cargo.toml"}, rust.BackedUp)

	assert.Equal(t, []string{"requests==2.31.0", "flask>=2"}, py.Dependencies)
	assert.True(t, fr.Called("pip install --upgrade -r requirements.txt"))
	assert.True(t, fr.Called("pip list --outdated"))

	assert.Equal(t, []string{"php >=8.1", "phpunit/phpunit ^10 (dev)"}, php.Dependencies)
	assert.True(t, php.Failed())
	assert.False(t, fr.Called("composer outdated"), "outdated is skipped after a failed update")
}

func TestBackup_RemovesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	target, copied, err := Backup(dir, []string{"Cargo.lock"}, backupTime)
	require.NoError(t, err)
	assert.Empty(t, target)
	assert.Empty(t, copied)
	_, statErr := os.Stat(filepath.Join(dir, "backup", "20250526123045"))
	assert.True(t, os.IsNotExist(statErr))
}
