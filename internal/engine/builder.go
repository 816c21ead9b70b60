// Package engine builds container engine command lines for deployment services.
package engine

import (
	"fmt"

	"github.com/steveyegge/henchman/internal/deploy"
)

// DefaultEngine is the engine binary used when none is configured.
const DefaultEngine = "docker"

// Argv is one external command invocation: program name followed by arguments.
type Argv []string

// Builder produces run/stop command lines for a given engine binary.
type Builder struct {
	Engine string
}

// Default is a Builder for docker.
var Default = Builder{Engine: DefaultEngine}

// New returns a Builder for engine, falling back to docker when empty.
func New(engine string) Builder {
	if engine == "" {
		engine = DefaultEngine
	}
	return Builder{Engine: engine}
}

// ContainerName derives the container name for a service in a project.
func ContainerName(project, service string) string {
	return fmt.Sprintf("%s_%s_1", project, service)
}

// RunCommand returns the command that starts svc as container.
// The container is removed on exit and detached when svc.Detached is set.
func (b Builder) RunCommand(svc deploy.Service, container string) Argv {
	argv := Argv{b.engine(), "run", "--name", container, "--rm"}
	if svc.Detached {
		argv = append(argv, "--detach")
	}
	return append(argv, svc.Image)
}

// StopCommand returns the command that stops container.
func (b Builder) StopCommand(_ deploy.Service, container string) Argv {
	return Argv{b.engine(), "container", "stop", container}
}

func (b Builder) engine() string {
	if b.Engine == "" {
		return DefaultEngine
	}
	return b.Engine
}
