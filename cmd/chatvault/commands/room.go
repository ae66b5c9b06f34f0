package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"chatvault/internal/domain"
	"chatvault/internal/keying"
)

func roomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Create, inspect and delete chat rooms",
	}
	cmd.AddCommand(roomCreateCmd(), roomShowCmd(), roomDeleteCmd(), roomPasswordCmd())
	return cmd
}

// room create: build a new room owned by --wallet and print its storage key.
func roomCreateCmd() *cobra.Command {
	var (
		chatType, wallet, name, desc string
		password, pin                string
		profile                      domain.MemberProfile
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a chat room owned by a wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := parseChatType(chatType)
			if err != nil {
				return err
			}
			owner, err := keying.ParseAddress(wallet)
			if err != nil {
				return err
			}
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}

			roomID, err := svc.GenerateRandomRoomID(ct)
			if err != nil {
				return err
			}
			if password == "" && ct == domain.ChatTypeGroup {
				if password, err = svc.GenerateRandomEncryptionKey(); err != nil {
					return err
				}
			}
			sealed, err := svc.EncryptPassword(password, pin)
			if err != nil {
				return err
			}

			item := domain.NewChatRoom(owner, ct, roomID, name, desc, sealed, profile, time.Now().UnixMilli())
			key, err := svc.KeyByItem(item)
			if err != nil {
				return err
			}
			if err := svc.Put(cmd.Context(), key, item); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Room created.\nRoom ID: %s\nKey: %s\n", roomID, key)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&chatType, "type", "group", "chat type: private or group")
	f.StringVar(&wallet, "wallet", "", "owner wallet address")
	f.StringVar(&name, "name", "", "room name")
	f.StringVar(&desc, "desc", "", "room description")
	f.StringVar(&password, "password", "", "room password (group rooms default to a random key)")
	f.StringVar(&pin, "pin", "", "pin code mixed into the password encryption")
	f.StringVar(&profile.UserName, "user-name", "", "owner display name")
	f.StringVar(&profile.UserAvatar, "avatar", "", "owner avatar URL")
	f.StringVar(&profile.PublicKey, "public-key", "", "owner public key")
	_ = cmd.MarkFlagRequired("wallet")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func roomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Print a chat room record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			item, ok, err := svc.Get(cmd.Context(), domain.StorageKey(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("room %s: %w", args[0], domain.ErrNotFound)
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
}

func roomDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a chat room record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			existed, err := svc.Delete(cmd.Context(), domain.StorageKey(args[0]))
			if err != nil {
				return err
			}
			if !existed {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to delete")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

// room password: reveal the room password, or check a candidate with --verify.
func roomPasswordCmd() *cobra.Command {
	var pin, verify string
	cmd := &cobra.Command{
		Use:   "password <key>",
		Short: "Decrypt or verify a room password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			key := domain.StorageKey(args[0])
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("verify") {
				ok, err := svc.VerifyPassword(cmd.Context(), key, verify, pin)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ok)
				return nil
			}
			pw, err := svc.RevealPassword(cmd.Context(), key, pin)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, pw)
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "pin code used at creation")
	cmd.Flags().StringVar(&verify, "verify", "", "compare against this password instead of printing it")
	return cmd
}

func parseChatType(s string) (domain.ChatType, error) {
	ct := domain.ChatType(strings.ToUpper(strings.TrimSpace(s)))
	if !ct.Valid() {
		return "", fmt.Errorf("%w: chat type %q (want private or group)", domain.ErrInvalidArgument, s)
	}
	return ct, nil
}
