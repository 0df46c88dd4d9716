package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/rollup"
)

// hexElement is a field element encoded as a "0x..." big-endian hex
// string, reduced mod r on decode. Fixture files use this rather than
// binary framing so they stay diffable in version control.
type hexElement string

func (h hexElement) toField() (field.Element, error) {
	s := string(h)
	if s == "" {
		return field.Zero(), nil
	}
	return field.ParseHex(s)
}

type accountFixture struct {
	Key               hexElement `json:"key"`
	Balance           hexElement `json:"balance"`
	Nonce             hexElement `json:"nonce"`
	RandomOracleNonce hexElement `json:"random_oracle_nonce"`
}

func (a accountFixture) toAccount() (rollup.Account, error) {
	var out rollup.Account
	var err error
	if out.Key, err = a.Key.toField(); err != nil {
		return out, fmt.Errorf("account.key: %w", err)
	}
	if out.Balance, err = a.Balance.toField(); err != nil {
		return out, fmt.Errorf("account.balance: %w", err)
	}
	if out.Nonce, err = a.Nonce.toField(); err != nil {
		return out, fmt.Errorf("account.nonce: %w", err)
	}
	if out.RandomOracleNonce, err = a.RandomOracleNonce.toField(); err != nil {
		return out, fmt.Errorf("account.random_oracle_nonce: %w", err)
	}
	return out, nil
}

type fileFixture struct {
	ExpirationTime hexElement `json:"expiration_time"`
	Owner          hexElement `json:"owner"`
	Data           hexElement `json:"data"`
}

func (f fileFixture) toFile() (rollup.File, error) {
	var out rollup.File
	var err error
	if out.ExpirationTime, err = f.ExpirationTime.toField(); err != nil {
		return out, fmt.Errorf("file.expiration_time: %w", err)
	}
	if out.Owner, err = f.Owner.toField(); err != nil {
		return out, fmt.Errorf("file.owner: %w", err)
	}
	if out.Data, err = f.Data.toField(); err != nil {
		return out, fmt.Errorf("file.data: %w", err)
	}
	return out, nil
}

type signatureFixture struct {
	A  hexElement `json:"a"`
	S  hexElement `json:"s"`
	R8 hexElement `json:"r8"`
}

func (s signatureFixture) toSignature() (babyjubjub.SignaturePacked, error) {
	var out babyjubjub.SignaturePacked
	var err error
	if out.A, err = s.A.toField(); err != nil {
		return out, fmt.Errorf("signature.a: %w", err)
	}
	if out.S, err = s.S.toField(); err != nil {
		return out, fmt.Errorf("signature.s: %w", err)
	}
	if out.R8, err = s.R8.toField(); err != nil {
		return out, fmt.Errorf("signature.r8: %w", err)
	}
	return out, nil
}

type proofFixture struct {
	IndexBits []bool       `json:"index_bits"`
	HashPath  []hexElement `json:"hash_path"`
}

func (p proofFixture) toProof() (merkle.Proof, error) {
	path := make([]field.Element, len(p.HashPath))
	for i, h := range p.HashPath {
		e, err := h.toField()
		if err != nil {
			return merkle.Proof{}, fmt.Errorf("proof.hash_path[%d]: %w", i, err)
		}
		path[i] = e
	}
	return merkle.Proof{IndexBits: p.IndexBits, HashPath: path}, nil
}

type transferFixture struct {
	SenderIndex     hexElement       `json:"sender_index"`
	ReceiverIndex   hexElement       `json:"receiver_index"`
	ReceiverKey     hexElement       `json:"receiver_key"`
	Amount          hexElement       `json:"amount"`
	Nonce           hexElement       `json:"nonce"`
	ProofSender     proofFixture     `json:"proof_sender"`
	ProofReceiver   proofFixture     `json:"proof_receiver"`
	AccountSender   accountFixture   `json:"account_sender"`
	AccountReceiver accountFixture   `json:"account_receiver"`
	Signature       signatureFixture `json:"signature"`
}

type fileTxFixture struct {
	SenderIndex   hexElement       `json:"sender_index"`
	DataIndex     hexElement       `json:"data_index"`
	TimeInterval  hexElement       `json:"time_interval"`
	Data          hexElement       `json:"data"`
	Nonce         hexElement       `json:"nonce"`
	ProofSender   proofFixture     `json:"proof_sender"`
	ProofFile     proofFixture     `json:"proof_file"`
	AccountSender accountFixture   `json:"account_sender"`
	File          fileFixture      `json:"file"`
	Signature     signatureFixture `json:"signature"`
}

type miningFixture struct {
	SenderIndex       hexElement       `json:"sender_index"`
	Nonce             hexElement       `json:"nonce"`
	RandomOracleNonce hexElement       `json:"random_oracle_nonce"`
	MiningNonce       hexElement       `json:"mining_nonce"`
	ProofSender       proofFixture     `json:"proof_sender"`
	AccountSender     accountFixture   `json:"account_sender"`
	RandomOracleValue hexElement       `json:"random_oracle_value"`
	ProofFile         proofFixture     `json:"proof_file"`
	File              fileFixture      `json:"file"`
	ProofDataInFile   proofFixture     `json:"proof_data_in_file"`
	DataInFile        hexElement       `json:"data_in_file"`
	Signature         signatureFixture `json:"signature"`
}

type rootFixture struct {
	Acc  hexElement `json:"acc"`
	Data hexElement `json:"data"`
}

func (r rootFixture) toRoot() (rollup.Root, error) {
	var out rollup.Root
	var err error
	if out.Acc, err = r.Acc.toField(); err != nil {
		return out, fmt.Errorf("root.acc: %w", err)
	}
	if out.Data, err = r.Data.toField(); err != nil {
		return out, fmt.Errorf("root.data: %w", err)
	}
	return out, nil
}

// witnessFixture is the on-disk JSON shape for a full rollup.Witness plus
// the pub_hash it is checked against.
type witnessFixture struct {
	PubHash hexElement `json:"pub_hash"`
	Public  struct {
		OldRoot hexElement   `json:"old_root"`
		NewRoot hexElement   `json:"new_root"`
		Now     hexElement   `json:"now"`
		Oracle  struct {
			Offset hexElement   `json:"offset"`
			Data   []hexElement `json:"data"`
		} `json:"oracle"`
	} `json:"public"`
	OldRootRecord rootFixture       `json:"old_root_record"`
	NewRootRecord rootFixture       `json:"new_root_record"`
	Transfers     []transferFixture `json:"transfers"`
	Files         []fileTxFixture   `json:"files"`
	Mines         []miningFixture   `json:"mines"`
}

func loadWitnessFixture(path string) (field.Element, rollup.Witness, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return field.Element{}, rollup.Witness{}, err
	}
	var fx witnessFixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return field.Element{}, rollup.Witness{}, fmt.Errorf("parsing fixture: %w", err)
	}
	return fx.build()
}

func (fx witnessFixture) build() (field.Element, rollup.Witness, error) {
	var w rollup.Witness
	pubHash, err := fx.PubHash.toField()
	if err != nil {
		return field.Element{}, w, fmt.Errorf("pub_hash: %w", err)
	}

	if w.Public.OldRoot, err = fx.Public.OldRoot.toField(); err != nil {
		return field.Element{}, w, fmt.Errorf("public.old_root: %w", err)
	}
	if w.Public.NewRoot, err = fx.Public.NewRoot.toField(); err != nil {
		return field.Element{}, w, fmt.Errorf("public.new_root: %w", err)
	}
	if w.Public.Now, err = fx.Public.Now.toField(); err != nil {
		return field.Element{}, w, fmt.Errorf("public.now: %w", err)
	}
	if w.Public.Oracle.Offset, err = fx.Public.Oracle.Offset.toField(); err != nil {
		return field.Element{}, w, fmt.Errorf("public.oracle.offset: %w", err)
	}
	w.Public.Oracle.Data = make([]field.Element, len(fx.Public.Oracle.Data))
	for i, h := range fx.Public.Oracle.Data {
		if w.Public.Oracle.Data[i], err = h.toField(); err != nil {
			return field.Element{}, w, fmt.Errorf("public.oracle.data[%d]: %w", i, err)
		}
	}

	if w.OldRootRecord, err = fx.OldRootRecord.toRoot(); err != nil {
		return field.Element{}, w, err
	}
	if w.NewRootRecord, err = fx.NewRootRecord.toRoot(); err != nil {
		return field.Element{}, w, err
	}

	for i, t := range fx.Transfers {
		slot, err := t.toSlot()
		if err != nil {
			return field.Element{}, w, fmt.Errorf("transfers[%d]: %w", i, err)
		}
		w.Block.Transfers = append(w.Block.Transfers, slot)
	}
	for i, t := range fx.Files {
		slot, err := t.toSlot()
		if err != nil {
			return field.Element{}, w, fmt.Errorf("files[%d]: %w", i, err)
		}
		w.Block.Files = append(w.Block.Files, slot)
	}
	for i, t := range fx.Mines {
		slot, err := t.toSlot()
		if err != nil {
			return field.Element{}, w, fmt.Errorf("mines[%d]: %w", i, err)
		}
		w.Block.Mines = append(w.Block.Mines, slot)
	}

	return pubHash, w, nil
}

func (t transferFixture) toSlot() (rollup.TransferSlot, error) {
	var out rollup.TransferSlot
	var err error
	if out.Tx.SenderIndex, err = t.SenderIndex.toField(); err != nil {
		return out, err
	}
	if out.Tx.ReceiverIndex, err = t.ReceiverIndex.toField(); err != nil {
		return out, err
	}
	if out.Tx.ReceiverKey, err = t.ReceiverKey.toField(); err != nil {
		return out, err
	}
	if out.Tx.Amount, err = t.Amount.toField(); err != nil {
		return out, err
	}
	if out.Tx.Nonce, err = t.Nonce.toField(); err != nil {
		return out, err
	}
	if out.ProofSender, err = t.ProofSender.toProof(); err != nil {
		return out, err
	}
	if out.ProofReceiver, err = t.ProofReceiver.toProof(); err != nil {
		return out, err
	}
	if out.AccountSender, err = t.AccountSender.toAccount(); err != nil {
		return out, err
	}
	if out.AccountReceiver, err = t.AccountReceiver.toAccount(); err != nil {
		return out, err
	}
	if out.Signature, err = t.Signature.toSignature(); err != nil {
		return out, err
	}
	return out, nil
}

func (t fileTxFixture) toSlot() (rollup.FileSlot, error) {
	var out rollup.FileSlot
	var err error
	if out.Tx.SenderIndex, err = t.SenderIndex.toField(); err != nil {
		return out, err
	}
	if out.Tx.DataIndex, err = t.DataIndex.toField(); err != nil {
		return out, err
	}
	if out.Tx.TimeInterval, err = t.TimeInterval.toField(); err != nil {
		return out, err
	}
	if out.Tx.Data, err = t.Data.toField(); err != nil {
		return out, err
	}
	if out.Tx.Nonce, err = t.Nonce.toField(); err != nil {
		return out, err
	}
	if out.ProofSender, err = t.ProofSender.toProof(); err != nil {
		return out, err
	}
	if out.ProofFile, err = t.ProofFile.toProof(); err != nil {
		return out, err
	}
	if out.AccountSender, err = t.AccountSender.toAccount(); err != nil {
		return out, err
	}
	if out.File, err = t.File.toFile(); err != nil {
		return out, err
	}
	if out.Signature, err = t.Signature.toSignature(); err != nil {
		return out, err
	}
	return out, nil
}

func (t miningFixture) toSlot() (rollup.MiningSlot, error) {
	var out rollup.MiningSlot
	var err error
	if out.Tx.SenderIndex, err = t.SenderIndex.toField(); err != nil {
		return out, err
	}
	if out.Tx.Nonce, err = t.Nonce.toField(); err != nil {
		return out, err
	}
	if out.Tx.RandomOracleNonce, err = t.RandomOracleNonce.toField(); err != nil {
		return out, err
	}
	if out.Tx.MiningNonce, err = t.MiningNonce.toField(); err != nil {
		return out, err
	}
	if out.ProofSender, err = t.ProofSender.toProof(); err != nil {
		return out, err
	}
	if out.AccountSender, err = t.AccountSender.toAccount(); err != nil {
		return out, err
	}
	if out.RandomOracleValue, err = t.RandomOracleValue.toField(); err != nil {
		return out, err
	}
	if out.ProofFile, err = t.ProofFile.toProof(); err != nil {
		return out, err
	}
	if out.File, err = t.File.toFile(); err != nil {
		return out, err
	}
	if out.ProofDataInFile, err = t.ProofDataInFile.toProof(); err != nil {
		return out, err
	}
	if out.DataInFile, err = t.DataInFile.toField(); err != nil {
		return out, err
	}
	if out.Signature, err = t.Signature.toSignature(); err != nil {
		return out, err
	}
	return out, nil
}
