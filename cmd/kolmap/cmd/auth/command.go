// Package auth provides the credential status command.
package auth

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	internalauth "github.com/agentstation/kolmap/internal/auth"
	"github.com/agentstation/kolmap/internal/cmd/emoji"
	"github.com/agentstation/kolmap/internal/cmd/output"
	cmdtable "github.com/agentstation/kolmap/internal/cmd/table"
)

// AppContext defines what the auth commands need from the app.
type AppContext interface {
	AuthStatus() *internalauth.Status
	OutputFormat() string
}

// NewCommand creates the auth command using app context.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Inspect the Google credentials used by Sheets and Drive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewStatusCommand(app))

	return cmd
}

// StatusView is the structured form of the status output.
type StatusView struct {
	State         string    `json:"state" yaml:"state"`
	Summary       string    `json:"summary" yaml:"summary"`
	Type          string    `json:"type,omitempty" yaml:"type,omitempty"`
	Account       string    `json:"account,omitempty" yaml:"account,omitempty"`
	Project       string    `json:"project,omitempty" yaml:"project,omitempty"`
	ProjectSource string    `json:"project_source,omitempty" yaml:"project_source,omitempty"`
	Path          string    `json:"path,omitempty" yaml:"path,omitempty"`
	LastAuth      time.Time `json:"last_auth,omitzero" yaml:"last_auth,omitempty"`
	Error         string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewStatusCommand creates the auth status command.
func NewStatusCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show credential status (local checks only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := NewStatusView(app.AuthStatus())
			return PrintStatus(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), view)
		},
	}
}

// NewStatusView flattens a status for output.
func NewStatusView(st *internalauth.Status) StatusView {
	view := StatusView{State: st.State.String(), Summary: st.Summary}
	if d := st.Details; d != nil {
		view.Type = d.Type
		view.Account = d.Account
		view.Project = d.Project
		view.ProjectSource = d.ProjectSource
		view.Path = d.Path
		view.LastAuth = d.LastAuth
		view.Error = d.ErrorMessage
	}
	return view
}

// PrintStatus writes the status view.
func PrintStatus(w io.Writer, format output.Format, v StatusView) error {
	return output.Write(w, format, v, func(bool) cmdtable.Data {
		rows := [][]string{
			{"Status", fmt.Sprintf("%s %s", emoji.ForAuth(parseState(v.State)), v.State)},
			{"Summary", cmdtable.OrDash(v.Summary)},
		}
		add := func(k, val string) {
			if val != "" {
				rows = append(rows, []string{k, val})
			}
		}
		add("Credential Type", v.Type)
		add("Account", v.Account)
		if v.Project != "" {
			add("Project", fmt.Sprintf("%s (%s)", v.Project, v.ProjectSource))
		}
		add("Path", v.Path)
		if !v.LastAuth.IsZero() {
			add("Last Authenticated", v.LastAuth.Format(time.DateTime))
		}
		add("Error", v.Error)
		return cmdtable.Data{Headers: []string{"Property", "Value"}, Rows: rows}
	})
}

func parseState(s string) internalauth.State {
	for _, st := range []internalauth.State{
		internalauth.StateConfigured,
		internalauth.StateMissing,
		internalauth.StateInvalid,
		internalauth.StateOptional,
	} {
		if st.String() == s {
			return st
		}
	}
	return internalauth.State(-1)
}
