package main

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"cmd", "--config=/tmp/scan.yaml", "--once=true"}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	cfgPath, once := parseFlags()
	assert.Equal(t, "/tmp/scan.yaml", cfgPath)
	assert.True(t, once)
}
