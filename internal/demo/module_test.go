package demo

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-sigslot/config"
	"github.com/dep2p/go-sigslot/internal/core/lifecycle"
)

// TestModule_Run 测试通过 fx 组装并运行场景
func TestModule_Run(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Demo.Rounds = 1
	cfg.Demo.DropPeerManagerAfter = 0

	var (
		buf      bytes.Buffer
		scenario *Scenario
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(fx.Annotate(
			func() io.Writer { return &buf },
			fx.ResultTags(`name:"demo_output"`),
		)),
		lifecycle.Module(),
		Module,
		fx.Populate(&scenario),
	)
	app.RequireStart()

	require.NoError(t, scenario.Run(context.Background()))
	assert.Contains(t, buf.String(), "PeerManager : server disconnected")

	app.RequireStop()
	assert.True(t, scenario.Server.Connected.Closed())
	assert.True(t, scenario.PeersDropped(), "app scope closes nested peers scope")
}
