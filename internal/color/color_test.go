// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, detect(), "NO_COLOR disables colour")

	t.Setenv(ForceColor, "1")
	assert.False(t, detect(), "NO_COLOR wins over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, detect(), "FORCE_COLOR enables colour")
}

func TestColorize(t *testing.T) {
	prev := SetEnabled(true)
	defer SetEnabled(prev)

	assert.Equal(t, "\033[1;31mboom\033[0m", Colorize("boom", Bold, FgRed))
	assert.Equal(t, "\033[32mok", ColorizeNoReset("ok", FgGreen))
	assert.Equal(t, "plain", Colorize("plain"))
	assert.Equal(t, "\033[0m", ControlString(Reset))

	SetEnabled(false)
	assert.Equal(t, "boom", Colorize("boom", Bold, FgRed))
	assert.Empty(t, ControlString(Reset))
}
