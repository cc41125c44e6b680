package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/spf13/cobra"
)

func collectionCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Register, approve, mint and inspect collections",
	}
	cmd.AddCommand(
		collectionRegisterCmd(a),
		collectionApproveCmd(a),
		collectionMintCmd(a),
		collectionShowCmd(a),
		collectionCountCmd(a),
	)
	return cmd
}

func collectionRegisterCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [origin] [name] [capacity] [mint-fee]",
		Short: "Register a collection and open its fund",
		Args:  cobra.ExactArgs(4),
		Example: strings.TrimSpace(fmt.Sprintf(`
$ %s collection register 2f8aa18a-3cb8-31d5-95bc-5a4f2e25dc2f C1 100 10 --description "first drop"`, appName)),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := strconv.ParseUint(args[2], 10, 16)
			if err != nil {
				return fmt.Errorf("invalid capacity %s: %w", args[2], err)
			}
			fee, err := chain.ParseBalance(args[3])
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString(flagDescription)
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return rt.RegisterCollection(ctx, args[0], args[1], desc, uint16(capacity), fee)
			})
		},
	}
	cmd.Flags().String(flagDescription, "", "collection description")
	return cmd
}

func collectionApproveCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [origin] [collection]",
		Short: "Approve a draft collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetUint32(flagStart)
			end, _ := cmd.Flags().GetUint32(flagEnd)
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				err := rt.ApproveCollection(ctx, args[0], id, start, end)
				if err != nil {
					return nil, err
				}
				return rt.Collection(id)
			})
		},
	}
	cmd.Flags().Uint32(flagStart, 0, "sale start date")
	cmd.Flags().Uint32(flagEnd, 0, "sale end date")
	return cmd
}

func collectionMintCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "mint [origin] [collection]",
		Short: "Mint the next item of a collection, paying its mint fee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				item, err := rt.Mint(ctx, args[0], id)
				if err == nil && item == nil {
					a.Log.Warn("Collection sold out, nothing minted")
				}
				return item, err
			})
		},
	}
}

func collectionShowCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "show [collection]",
		Short: "Show a collection with its items and fund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint32(args[0])
			if err != nil {
				return err
			}
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				c, err := rt.Collection(id)
				if err != nil {
					return nil, err
				} else if c == nil {
					return nil, fmt.Errorf("collection %d: %w", id, chain.ErrNotFound)
				}
				items, err := rt.Items(id)
				if err != nil {
					return nil, err
				}
				fund, err := rt.Fund(id)
				return map[string]any{"collection": c, "items": items, "fund": fund}, err
			})
		},
	}
}

func collectionCountCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of launchpad collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return rt.LaunchpadCollections()
			})
		},
	}
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %s: %w", s, chain.ErrInvalidArgument)
	}
	return uint32(v), nil
}
