package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	browser, os, device := ParseUserAgent("")
	assert.Equal(t, "Unknown Browser", browser)
	assert.Equal(t, "Unknown OS", os)
	assert.Equal(t, "Desktop", device)

	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	_, _, device = ParseUserAgent(iphone)
	assert.Equal(t, "iPhone", device)
}

func TestDeviceLabel(t *testing.T) {
	assert.Equal(t, "", DeviceLabel(""))
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	assert.Equal(t, "Chrome on Windows", DeviceLabel(chrome))
}
