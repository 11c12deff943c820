package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tradecalc/internal/calc"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "tradecalc version test-version-1.0.0")
}

func TestFunctionsCmd_ListsCatalog(t *testing.T) {
	out, err := execute(t, "functions")
	require.NoError(t, err)

	for _, f := range calc.Catalog() {
		assert.Contains(t, out, string(f.Name))
	}
	assert.Contains(t, out, "planned")
}

func TestCalcCmd_PrintsResponse(t *testing.T) {
	out, err := execute(t, "calc", "diagonal", "--param", "rise=3", "--param", "run=4", "--in", "ft", "--precision", "8")
	require.NoError(t, err)

	var resp calc.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Result)
	assert.InDelta(t, 5, *resp.Result, 1e-9)
	assert.Equal(t, `5' 0"`, resp.Display)
}

func TestCalcCmd_FailsOnStub(t *testing.T) {
	out, err := execute(t, "calc", "hipRafterLength")
	assert.ErrorIs(t, err, errCalcFailed)
	assert.Contains(t, out, "NOT_IMPLEMENTED")
}

func TestCalcCmd_ZeroPrecisionUsesDefault(t *testing.T) {
	out, err := execute(t, "calc", "diagonal", "--param", "rise=3", "--param", "run=4", "--in", "ft", "--precision", "0")
	require.NoError(t, err)

	var resp calc.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.OK, resp.Message)
	assert.Equal(t, `5' 0"`, resp.Display)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"rise=3 1/2", " run = 4 "})
	require.NoError(t, err)
	assert.Equal(t, calc.Params{"rise": "3 1/2", "run": "4"}, params)

	_, err = parseParams([]string{"rise"})
	assert.Error(t, err)

	_, err = parseParams([]string{"=3"})
	assert.Error(t, err)
}
