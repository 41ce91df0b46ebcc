package metrics

import "testing"

func TestSetup(t *testing.T) {
	Setup(DefaultConfig)
	if DefaultConfig.Enabled {
		t.Fatal("metrics enabled by default")
	}
	Setup(Config{Enabled: true})
	if !Enabled() {
		t.Fatal("metrics not enabled after setup")
	}
}
