package client

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"
	"github.com/ava-labs/ledgerguard/ledgerguard"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// Client defines ledgerguard client operations.
type Client interface {
	// Execute runs a named transition against an ordered account list with
	// a raw instruction payload
	Execute(ctx context.Context, transition string, accounts []ids.ID, payload []byte) (bool, error)

	// GetAccount fetches the committed account at [addr]
	GetAccount(ctx context.Context, addr ids.ID) (ids.ID, uint64, []byte, error)

	// SetAccount writes an account directly, standing in for the host ledger
	SetAccount(ctx context.Context, acctAddr ids.ID, owner ids.ID, balance uint64, data []byte) (bool, error)

	// Derive returns the canonical address for [seed] under the program
	Derive(ctx context.Context, seed []byte) (ids.ID, error)
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) Execute(ctx context.Context, transition string, accounts []ids.ID, payload []byte) (bool, error) {
	payloadStr, err := formatting.Encode(formatting.Hex, payload)
	if err != nil {
		return false, err
	}

	resp := new(ledgerguard.ExecuteReply)
	err = cli.req.SendRequest(ctx,
		"ledgerguard.execute",
		&ledgerguard.ExecuteArgs{
			Transition: transition,
			Accounts:   accounts,
			Payload:    payloadStr,
		},
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) GetAccount(ctx context.Context, addr ids.ID) (ids.ID, uint64, []byte, error) {
	resp := new(ledgerguard.GetAccountReply)
	err := cli.req.SendRequest(ctx,
		"ledgerguard.getAccount",
		&ledgerguard.GetAccountArgs{Address: addr},
		resp,
	)
	if err != nil {
		return ids.Empty, 0, nil, err
	}
	data, err := formatting.Decode(formatting.Hex, resp.Data)
	if err != nil {
		return ids.Empty, 0, nil, err
	}
	return resp.Owner, uint64(resp.Balance), data, nil
}

func (cli *client) SetAccount(ctx context.Context, acctAddr ids.ID, owner ids.ID, balance uint64, data []byte) (bool, error) {
	dataStr, err := formatting.Encode(formatting.Hex, data)
	if err != nil {
		return false, err
	}

	resp := new(ledgerguard.SetAccountReply)
	err = cli.req.SendRequest(ctx,
		"ledgerguard.setAccount",
		&ledgerguard.SetAccountArgs{
			Address: acctAddr,
			Owner:   owner,
			Balance: cjson.Uint64(balance),
			Data:    dataStr,
		},
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (cli *client) Derive(ctx context.Context, seed []byte) (ids.ID, error) {
	seedStr, err := formatting.Encode(formatting.Hex, seed)
	if err != nil {
		return ids.Empty, err
	}

	resp := new(ledgerguard.DeriveReply)
	err = cli.req.SendRequest(ctx,
		"ledgerguard.derive",
		&ledgerguard.DeriveArgs{Seed: seedStr},
		resp,
	)
	if err != nil {
		return ids.Empty, err
	}
	return resp.Address, nil
}
