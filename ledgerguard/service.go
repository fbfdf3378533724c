// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledgerguard

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

// Service is the API service for the kernel.
type Service struct {
	kernel *Kernel
}

// NewHandler returns an HTTP handler exposing [kernel] over JSON-RPC.
func NewHandler(kernel *Kernel) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(&Service{kernel: kernel}, Name)
}

// ExecuteArgs are the arguments to Execute
type ExecuteArgs struct {
	// Transition is the registered name of the transition to run
	Transition string `json:"transition"`
	// Accounts is the caller-declared ordered account list
	Accounts []ids.ID `json:"accounts"`
	// Payload is the hex-encoded raw instruction payload
	Payload string `json:"payload"`
}

// ExecuteReply is the reply from Execute
type ExecuteReply struct {
	Success bool `json:"success"`
}

// Execute runs one guarded transition. A rejected transition surfaces its
// failure kind as the RPC error string.
func (s *Service) Execute(_ *http.Request, args *ExecuteArgs, reply *ExecuteReply) error {
	payload, err := formatting.Decode(formatting.Hex, args.Payload)
	if err != nil {
		return errInvalidPayload
	}
	if err := s.kernel.Execute(args.Transition, args.Accounts, payload); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// GetAccountArgs are the arguments to GetAccount
type GetAccountArgs struct {
	Address ids.ID `json:"address"`
}

// GetAccountReply is the reply from GetAccount
type GetAccountReply struct {
	Address ids.ID       `json:"address"`
	Owner   ids.ID       `json:"owner"`
	Balance cjson.Uint64 `json:"balance"`
	// Data is the hex-encoded entity buffer
	Data string `json:"data"`
}

// GetAccount fetches the committed account at [args.Address].
func (s *Service) GetAccount(_ *http.Request, args *GetAccountArgs, reply *GetAccountReply) error {
	acct, err := s.kernel.GetAccount(args.Address)
	if err != nil {
		return err
	}
	data, err := formatting.Encode(formatting.Hex, acct.Data)
	if err != nil {
		return err
	}
	reply.Address = acct.Address
	reply.Owner = acct.Owner
	reply.Balance = cjson.Uint64(acct.Balance)
	reply.Data = data
	return nil
}

// SetAccountArgs are the arguments to SetAccount
type SetAccountArgs struct {
	Address ids.ID       `json:"address"`
	Owner   ids.ID       `json:"owner"`
	Balance cjson.Uint64 `json:"balance"`
	// Data is the hex-encoded raw buffer
	Data string `json:"data"`
}

// SetAccountReply is the reply from SetAccount
type SetAccountReply struct {
	Success bool `json:"success"`
}

// SetAccount writes an account directly, standing in for the host ledger
// (funding a wallet, a provider publishing a feed update). Transitions
// still prove everything they read, so nothing written here is trusted.
func (s *Service) SetAccount(_ *http.Request, args *SetAccountArgs, reply *SetAccountReply) error {
	data, err := formatting.Decode(formatting.Hex, args.Data)
	if err != nil {
		return err
	}
	if err := s.kernel.SetAccount(&Account{
		Address: args.Address,
		Owner:   args.Owner,
		Balance: uint64(args.Balance),
		Data:    data,
	}); err != nil {
		return err
	}
	reply.Success = true
	return nil
}

// EncodeArgs are arguments for Encode
type EncodeArgs struct {
	Data     string              `json:"data"`
	Encoding formatting.Encoding `json:"encoding"`
}

// EncodeReply is the reply from Encode
type EncodeReply struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// Encode returns the encoded data
func (s *Service) Encode(_ *http.Request, args *EncodeArgs, reply *EncodeReply) error {
	bytes, err := formatting.Encode(args.Encoding, []byte(args.Data))
	if err != nil {
		return fmt.Errorf("couldn't encode data as string: %s", err)
	}
	reply.Bytes = bytes
	reply.Encoding = args.Encoding
	return nil
}

// DecodeArgs are arguments for Decode
type DecodeArgs struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// DecodeReply is the reply from Decode
type DecodeReply struct {
	Data     string              `json:"data"`
	Encoding formatting.Encoding `json:"encoding"`
}

// Decode returns the decoded data
func (s *Service) Decode(_ *http.Request, args *DecodeArgs, reply *DecodeReply) error {
	bytes, err := formatting.Decode(args.Encoding, args.Bytes)
	if err != nil {
		return fmt.Errorf("couldn't decode data as string: %s", err)
	}
	reply.Data = string(bytes)
	reply.Encoding = args.Encoding
	return nil
}

// DeriveArgs are the arguments to Derive
type DeriveArgs struct {
	// Seed is the hex-encoded derivation seed
	Seed string `json:"seed"`
}

// DeriveReply is the reply from Derive
type DeriveReply struct {
	Address ids.ID `json:"address"`
}

// Derive returns the canonical address for [args.Seed] under this program,
// so callers can compute the address the kernel will re-derive.
func (s *Service) Derive(_ *http.Request, args *DeriveArgs, reply *DeriveReply) error {
	seed, err := formatting.Decode(formatting.Hex, args.Seed)
	if err != nil {
		return err
	}
	reply.Address = Derive(seed, ProgramID)
	return nil
}
