package deploy

import (
	"context"
	"strings"

	verrors "github.com/factbench/verdiq/pkg/errors"
)

// build invokes the external build tool. The exit code alone decides
// the outcome; on failure the tool's output is recorded verbatim.
func (g *Gate) build(ctx context.Context, state *State) bool {
	output, err := g.runner.Run(ctx, g.projectRoot, "npm", "run", "build")
	if err != nil {
		procErr := &verrors.ProcessError{
			Operation: "build",
			Command:   "npm run build",
			Output:    string(output),
			ExitCode:  exitCode(err),
			Err:       err,
		}
		state.BuildStatus = StatusFailed
		state.addError("build error: " + strings.TrimSpace(procErr.Output))
		g.logger.Error().Err(procErr).Msg("build failed")
		return false
	}

	state.BuildStatus = StatusSuccess
	g.logger.Info().Msg("build completed")
	return true
}
