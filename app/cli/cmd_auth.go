package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *cli) loginCmd() *cobra.Command {
	var email, password string
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the token for later writes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("SHOWCASE_PASSWORD")
			}
			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), res.Token)
				return nil
			}
			if err := a.saveToken(res.Token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s until %s\n", res.User.Email, res.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or SHOWCASE_PASSWORD)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the token instead of saving it")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *cli) uploadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uploads [record-id]",
		Short: "Show the server's image upload log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var recordID string
			if len(args) == 1 {
				recordID = args[0]
			}
			rows, err := a.api.UploadLog(cmd.Context(), recordID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "UPLOADED\tKIND\tRECORD\tFILE\tSIZE\tPATH")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.UploadAt.Local().Format("2006-01-02 15:04"), r.Kind, r.RecordID, r.FileName, r.FileSize, r.FilePath)
			}
			return tw.Flush()
		},
	}
}
