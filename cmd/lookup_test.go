package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civic-tools/district-cli/internal/model"
)

func TestFormatLookup(t *testing.T) {
	districts := model.Districts{
		model.JurisdictionStateHouse: {District: 4, Official: "Mary Lightbody", Party: "D"},
		model.JurisdictionUSHouse:    {District: 12, Official: "Troy Balderson", Party: "R"},
	}

	var buf bytes.Buffer
	formatLookup(&buf, districts, model.DefaultChambers())

	output := buf.String()
	assert.Contains(t, output, "CHAMBER")
	assert.Contains(t, output, "REPRESENTATIVE")
	assert.Contains(t, output, "House")
	assert.Contains(t, output, "Mary Lightbody")
	assert.Contains(t, output, "Troy Balderson")
	assert.Contains(t, output, "12")
}

func TestFormatLookup_UnmatchedChamberShowsDash(t *testing.T) {
	districts := model.Districts{
		model.JurisdictionStateHouse: {District: 4, Official: "Mary Lightbody", Party: "D"},
	}

	var buf bytes.Buffer
	formatLookup(&buf, districts, model.DefaultChambers())

	// Senate and US House rows render as dashes.
	assert.Contains(t, buf.String(), "-")
	assert.Contains(t, buf.String(), "Senate")
}
