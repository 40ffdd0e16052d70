package config

import (
	"errors"
	"fmt"
	"time"
)

// Workspace defaults.
const (
	DefaultBranch         = "main"
	DefaultEditor         = "code"
	DefaultCommandTimeout = 30 * time.Second
)

// Remote protocols used for the origin of a new working copy.
const (
	ProtocolSSH   = "ssh"
	ProtocolHTTPS = "https"
)

// WorkspaceConfig holds settings for bootstrapping local working copies.
type WorkspaceConfig struct {
	// Dir is the parent folder of new working copies. Empty means the current directory.
	Dir string `mapstructure:"dir" json:"dir" yaml:"dir"`

	// DefaultBranch is pulled from origin and tracked after init.
	DefaultBranch string `mapstructure:"default_branch" json:"default_branch" yaml:"default_branch"`

	// RemoteProtocol selects the origin URL form: ssh or https.
	RemoteProtocol string `mapstructure:"remote_protocol" json:"remote_protocol" yaml:"remote_protocol"`

	// RemoteURLTemplate overrides the origin URL. {owner} and {repo} are substituted.
	RemoteURLTemplate string `mapstructure:"remote_url_template" json:"remote_url_template" yaml:"remote_url_template"`

	// Editor is the command used to open a new working copy, e.g. "code" or "code -n".
	// It is bounded by CommandTimeout, so blocking forms such as "code --wait" fail.
	Editor string `mapstructure:"editor" json:"editor" yaml:"editor"`

	// OpenEditor controls whether the create workflow opens the editor.
	OpenEditor bool `mapstructure:"open_editor" json:"open_editor" yaml:"open_editor"`

	// CommandTimeout bounds each external command.
	CommandTimeout time.Duration `mapstructure:"command_timeout" json:"command_timeout" yaml:"command_timeout"`
}

// Validate validates the workspace configuration.
func (w WorkspaceConfig) Validate() error {
	if w.DefaultBranch == "" {
		return errors.New("workspace.default_branch cannot be empty")
	}

	if w.RemoteProtocol != ProtocolSSH && w.RemoteProtocol != ProtocolHTTPS {
		return fmt.Errorf("workspace.remote_protocol must be %q or %q, got %q",
			ProtocolSSH, ProtocolHTTPS, w.RemoteProtocol)
	}

	if w.OpenEditor && w.Editor == "" {
		return errors.New("workspace.editor cannot be empty when workspace.open_editor is set")
	}

	if w.CommandTimeout <= 0 {
		return fmt.Errorf("workspace.command_timeout must be positive, got %v", w.CommandTimeout)
	}

	return nil
}
