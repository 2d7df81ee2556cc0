package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fvtools/fvmirror/internal/filevine"
	"github.com/fvtools/fvmirror/internal/fvid"
)

type whoamiOrg struct {
	OrgID  fvid.ID `json:"org_id"`
	Name   string  `json:"name,omitempty"`
	Active bool    `json:"active,omitempty"`
}

type whoamiOutput struct {
	UserID fvid.ID     `json:"user_id"`
	Email  string      `json:"email,omitempty"`
	OrgID  fvid.ID     `json:"org_id"`
	Orgs   []whoamiOrg `json:"orgs"`
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user and organization",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := buildLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newAPISession(cmd.Context(), logger)
	if err != nil {
		return err
	}

	session := client.Session()

	if flagJSON {
		return printWhoamiJSON(session)
	}

	printWhoamiText(session)

	return nil
}

func printWhoamiText(s filevine.Session) {
	fmt.Printf("User:  %s\n", s.UserID)

	if s.Email != "" {
		fmt.Printf("Email: %s\n", s.Email)
	}

	fmt.Printf("Org:   %s\n", s.OrgID)

	if len(s.Orgs) == 0 {
		return
	}

	fmt.Printf("\nOrganizations (* = active):\n\n")

	rows := make([][]string, 0, len(s.Orgs))

	for _, org := range s.Orgs {
		marker := ""
		if org.ID == s.OrgID {
			marker = "*"
		}

		rows = append(rows, []string{marker, org.ID.String(), org.Name})
	}

	printTable(os.Stdout, []string{"", "ORG", "NAME"}, rows)
}

func printWhoamiJSON(s filevine.Session) error {
	out := whoamiOutput{
		UserID: s.UserID,
		Email:  s.Email,
		OrgID:  s.OrgID,
		Orgs:   make([]whoamiOrg, 0, len(s.Orgs)),
	}

	for _, org := range s.Orgs {
		out.Orgs = append(out.Orgs, whoamiOrg{
			OrgID:  org.ID,
			Name:   org.Name,
			Active: org.ID == s.OrgID,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
