package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPackageTable(t *testing.T) {
	out := RenderPackageTable([]PackageRow{
		{Scope: "@jest", Name: "core", Version: "26.6.3", Path: "storage/@jest/core/core-26.6.3.tgz"},
		{Name: "is", Version: "3.3.0", Path: "storage/is/is-3.3.0.tgz"},
	})

	assert.Contains(t, out, "SCOPE")
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "@jest")
	assert.Contains(t, out, "storage/is/is-3.3.0.tgz")
	assert.Contains(t, out, "-", "unscoped packages show a dash")
}

func TestTable_Len(t *testing.T) {
	tbl := NewTable("A", "B").Row("1", "2").Row("3", "4")
	assert.Equal(t, 2, tbl.Len())
}
