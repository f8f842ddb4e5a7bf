package pdfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := Config{TwoColumnFraction: 0.4}.withDefaults()

	assert.Equal(t, 0.4, cfg.TwoColumnFraction)
	assert.Equal(t, DefaultConfig().DensityThreshold, cfg.DensityThreshold)
	assert.Equal(t, 3, cfg.DensityPages)
	assert.Equal(t, 5, cfg.MinTextLines)
	assert.Equal(t, 200.0, cfg.OCRDPI)
}
