package deploy

import (
	"context"
	"path/filepath"
	"strings"

	verrors "github.com/factbench/verdiq/pkg/errors"
)

// publish runs the publish script. A non-zero exit fails the stage; if
// the script's output points at an authentication problem, a specific
// credential error is appended so the operator knows what to fix.
func (g *Gate) publish(ctx context.Context, state *State) bool {
	script := filepath.Join(g.projectRoot, publishScript)
	if !exists(script) {
		state.addError("publish script not found")
		return false
	}

	output, err := g.runner.Run(ctx, g.projectRoot, script)
	if err != nil {
		procErr := &verrors.ProcessError{
			Operation: "publish",
			Command:   script,
			Output:    string(output),
			ExitCode:  exitCode(err),
			Err:       err,
		}
		state.addError("publish error: " + strings.TrimSpace(procErr.Output))
		if procErr.AuthFailure() {
			state.addError("publish authentication failed, check the " + CredentialEnvVar + " credential")
		}
		g.logger.Error().Err(procErr).Msg("publish failed")
		return false
	}

	g.logger.Info().Msg("publish completed")
	return true
}
