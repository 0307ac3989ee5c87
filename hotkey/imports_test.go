package hotkey

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// displayImports connect to a window system as soon as they are linked in.
var displayImports = []string{
	"golang.design/x/hotkey",
	"github.com/jezek/xgbutil",
	"github.com/jezek/xgb",
	"github.com/diamondburned/gotk4",
}

// importsOf returns every import path of the non-test files in dir.
func importsOf(t *testing.T, dir string) []string {
	t.Helper()

	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	require.NoError(t, err)

	var paths []string
	fset := token.NewFileSet()
	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			paths = append(paths, path)
		}
	}
	return paths
}

func TestPackageLinksNoDisplayLibrary(t *testing.T) {
	for _, path := range importsOf(t, ".") {
		for _, banned := range displayImports {
			assert.False(t, strings.HasPrefix(path, banned), "hotkey imports %s", path)
		}
	}
}

func TestParseChordWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	c, err := ParseChord("Alt+Space")
	require.NoError(t, err)
	assert.Equal(t, "Alt+Space", c.String())
}
