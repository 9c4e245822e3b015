// Package blender drives a headless Blender process as the host application.
//
// Blender exposes its scene graph only through its embedded Python API, so
// the session translates each adapter call into a Python statement and, when
// Render is invoked, executes the accumulated script in a single
// `blender --background --python` child process. The child owns mesh import,
// rasterization and PNG encoding; its failures surface as the process's exit
// error, untranslated.
package blender

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Cabbache/meshtransform/internal/config"
	"github.com/Cabbache/meshtransform/internal/host"
)

// Session stages a bounded sequence of scene mutations and flushes them to a
// headless Blender run. A Session is good for one run and is not safe for
// concurrent use.
type Session struct {
	cfg    config.HostConfig
	logger *zap.Logger
	stmts  []string
}

var _ host.Session = (*Session)(nil)

// NewSession creates a session against the configured Blender installation.
func NewSession(cfg config.HostConfig, logger *zap.Logger) *Session {
	return &Session{
		cfg:    cfg,
		logger: logger.Named("blender"),
	}
}

// Select stages selection of every scene object according to pred: selected
// if and only if the type and name-prefix both match.
func (s *Session) Select(pred host.Predicate) error {
	s.stmts = append(s.stmts,
		fmt.Sprintf("for ob in bpy.data.scenes[%s].objects:", pyStr(s.cfg.SceneName)),
		fmt.Sprintf("    ob.select_set(ob.type == %s and ob.name.startswith(%s))",
			pyStr(string(pred.Type)), pyStr(pred.NamePrefix)),
	)
	return nil
}

// DeleteSelected stages deletion of all currently selected objects.
func (s *Session) DeleteSelected() error {
	s.stmts = append(s.stmts, "bpy.ops.object.delete()")
	return nil
}

// ImportSTL stages the STL import. Blender 4.x renamed the operator from
// import_mesh.stl to wm.stl_import; the script tries the current name first
// so both host generations work.
func (s *Session) ImportSTL(path string) error {
	p := pyStr(path)
	s.stmts = append(s.stmts,
		"try:",
		fmt.Sprintf("    bpy.ops.wm.stl_import(filepath=%s)", p),
		"except AttributeError:",
		fmt.Sprintf("    bpy.ops.import_mesh.stl(filepath=%s)", p),
	)
	return nil
}

// SetOutputPath stages assignment of the render settings' output file path.
func (s *Session) SetOutputPath(path string) error {
	s.stmts = append(s.stmts,
		fmt.Sprintf("bpy.data.scenes[%s].render.filepath = %s", pyStr(s.cfg.SceneName), pyStr(path)))
	return nil
}

// Render appends the still-render trigger and executes the whole staged
// script in a headless Blender child process, blocking until it exits.
func (s *Session) Render(ctx context.Context) error {
	s.stmts = append(s.stmts, "bpy.ops.render.render(write_still=True)")

	scriptFile, err := os.CreateTemp("", "meshtransform-*.py")
	if err != nil {
		return fmt.Errorf("failed to create host script: %w", err)
	}
	defer os.Remove(scriptFile.Name())

	if _, err := scriptFile.WriteString(s.Script()); err != nil {
		scriptFile.Close()
		return fmt.Errorf("failed to write host script: %w", err)
	}
	if err := scriptFile.Close(); err != nil {
		return fmt.Errorf("failed to write host script: %w", err)
	}

	runCtx := ctx
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	args := s.buildArgs(scriptFile.Name())
	s.logger.Info("Launching headless host process",
		zap.String("binary", s.cfg.Binary),
		zap.Strings("args", args),
	)

	cmd := exec.CommandContext(runCtx, s.cfg.Binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to attach host stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to attach host stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch host process %q: %w", s.cfg.Binary, err)
	}

	// Drain both pipes into the structured log so host-side import or render
	// failures are visible without a separate log file.
	g := new(errgroup.Group)
	g.Go(func() error { return s.drain("stdout", bufio.NewScanner(stdout)) })
	g.Go(func() error { return s.drain("stderr", bufio.NewScanner(stderr)) })

	scanErr := g.Wait()
	if err := cmd.Wait(); err != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			return fmt.Errorf("host render aborted: %w", ctxErr)
		}
		return fmt.Errorf("host process failed: %w", err)
	}
	if scanErr != nil {
		s.logger.Warn("Failed to drain host output", zap.Error(scanErr))
	}

	s.logger.Info("Host process finished")
	return nil
}

// drain forwards one host output stream into the structured log.
func (s *Session) drain(stream string, sc *bufio.Scanner) error {
	for sc.Scan() {
		s.logger.Debug("host output",
			zap.String("stream", stream),
			zap.String("line", sc.Text()),
		)
	}
	return sc.Err()
}

// Script renders the staged statements as the Python program handed to the
// host process.
func (s *Session) Script() string {
	var b strings.Builder
	b.WriteString("import bpy\n\n")
	for _, stmt := range s.stmts {
		b.WriteString(stmt)
		b.WriteByte('\n')
	}
	return b.String()
}

// buildArgs assembles the Blender command line. The scene file, when set,
// must precede the mode flags; without one the factory scene is used so the
// run does not depend on user preferences.
func (s *Session) buildArgs(scriptPath string) []string {
	var args []string
	if s.cfg.SceneFile != "" {
		args = append(args, s.cfg.SceneFile)
	} else {
		args = append(args, "--factory-startup")
	}
	args = append(args, "--background", "--python", scriptPath)
	args = append(args, s.cfg.ExtraArgs...)
	return args
}

// pyStr renders s as a single-quoted Python string literal.
func pyStr(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
