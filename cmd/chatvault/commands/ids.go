package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatvault/internal/domain"
	"chatvault/internal/keying"
)

func roomIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roomid",
		Short: "Generate or validate room ids",
	}

	var chatType string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Print a fresh room id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseChatType(chatType)
			if err != nil {
				return err
			}
			id, err := keying.GenerateRandomRoomID(ct)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	newCmd.Flags().StringVar(&chatType, "type", "group", "chat type: private or group")

	checkCmd := &cobra.Command{
		Use:   "check <roomId>",
		Short: "Validate a room id and print its chat type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.RoomID(args[0])
			if err := keying.IsValidRoomID(id); err != nil {
				return err
			}
			ct, err := keying.ChatTypeOfRoomID(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s room id\n", ct)
			return nil
		},
	}

	cmd.AddCommand(newCmd, checkCmd)
	return cmd
}

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Storage key helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "derive <wallet> <roomId>",
		Short: "Print the storage key of a wallet and room id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keying.KeyByWalletAndRoomID(args[0], domain.RoomID(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	})
	return cmd
}

func secretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Random secret helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Print a random 256-bit hex secret for use as a room password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := keying.GenerateRandomEncryptionKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	})
	return cmd
}
