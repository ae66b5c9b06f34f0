package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"chatvault/internal/domain"
)

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Edit the roster of a chat room",
	}
	cmd.AddCommand(memberAddCmd(), memberListCmd(), memberShowCmd(), memberRemoveCmd())
	return cmd
}

func memberAddCmd() *cobra.Command {
	var (
		m     domain.ChatRoomMember
		owner bool
	)
	cmd := &cobra.Command{
		Use:   "add <key> <wallet>",
		Short: "Add or replace a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			m.Wallet = domain.WalletAddress(args[1])
			m.MemberType = domain.MemberTypeMember
			if owner {
				m.MemberType = domain.MemberTypeOwner
			}
			m.Timestamp = time.Now().UnixMilli()

			saved, err := svc.PutMember(cmd.Context(), domain.StorageKey(args[0]), m)
			if err != nil {
				return err
			}
			if !saved {
				return fmt.Errorf("room %s: %w", args[0], domain.ErrNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "member saved")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&m.UserName, "user-name", "", "display name")
	f.StringVar(&m.UserAvatar, "avatar", "", "avatar URL")
	f.StringVar(&m.PublicKey, "public-key", "", "member public key")
	f.BoolVar(&owner, "owner", false, "add as OWNER instead of MEMBER")
	return cmd
}

func memberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <key>",
		Short: "List members of a chat room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			members, ok, err := svc.GetMembers(cmd.Context(), domain.StorageKey(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("room %s: %w", args[0], domain.ErrNotFound)
			}

			wallets := make([]string, 0, len(members))
			for w := range members {
				wallets = append(wallets, w.String())
			}
			sort.Strings(wallets)

			out := cmd.OutOrStdout()
			for _, w := range wallets {
				m := members[domain.WalletAddress(w)]
				fmt.Fprintf(out, "%s\t%s\t%s\n", m.Wallet, m.MemberType, m.UserName)
			}
			return nil
		},
	}
}

func memberShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <key> <wallet>",
		Short: "Print one member as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			m, ok, err := svc.GetMember(cmd.Context(), domain.StorageKey(args[0]), args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("member %s: %w", args[1], domain.ErrNotFound)
			}
			return printJSON(cmd.OutOrStdout(), m)
		},
	}
}

func memberRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key> <wallet>",
		Short: "Remove a member from a chat room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rooms(cmd)
			if err != nil {
				return err
			}
			removed, err := svc.DeleteMember(cmd.Context(), domain.StorageKey(args[0]), args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "not a member")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "member removed")
			return nil
		},
	}
}
