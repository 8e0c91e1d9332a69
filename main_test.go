package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkup-tracker/utils"
)

func TestOverdueLabel(t *testing.T) {
	assert.Equal(t, "", overdueLabel("not-a-date"))
	assert.Equal(t, "", overdueLabel(utils.GetDateInDays(0)))
	assert.Equal(t, " (3 days overdue)", overdueLabel(utils.GetDateInDays(-3)))
}
