package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/contactdex/internal/domain/search/query"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			if a == nil {
				return errors.New("list: not initialised")
			}

			cs, err := a.contacts.List(cmd.Context())
			if err != nil {
				return err
			}
			return renderContacts(cmd.OutOrStdout(), a.output, cs, fmt.Sprintf(query.MessageContactsListed, len(cs)))
		},
	}
}
