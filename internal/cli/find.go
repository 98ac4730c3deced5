package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/contactdex/internal/domain"
	"github.com/kailas-cloud/contactdex/internal/domain/search/mode"
)

func newFindCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "find [-s] PREFIX/VALUE...",
		Short: "Find contacts matching the given search parameters",
		Long:  domain.MessageUsage,
		Example: `  contactctl -f contacts.yaml find n/Alex n/Bernice
  contactctl -f contacts.yaml find -s n/Alex e/NUS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			if a == nil {
				return errors.New("find: not initialised")
			}

			line := strings.Join(args, " ")
			if strict {
				line = strings.TrimSpace(mode.Flag + " " + line)
			}

			res, err := a.search.Find(cmd.Context(), line)
			if err != nil {
				var ue *domain.UsageError
				if errors.As(err, &ue) {
					return errors.New(ue.Message)
				}
				return err
			}
			return renderContacts(cmd.OutOrStdout(), a.output, res.Contacts, res.Message)
		},
	}

	cmd.Flags().BoolVarP(&strict, "strict", "s", false, "Match only contacts satisfying every supplied field")
	// Everything after the first parameter belongs to the find grammar, "-s" included.
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%s\n(%w)", domain.UserMessage(domain.InvalidCommandFormat()), err)
	})

	return cmd
}
