package bookkeeper

import (
	"github.com/rollupzk/statecore/internal/babyjubjub"
	"github.com/rollupzk/statecore/internal/field"
	"github.com/rollupzk/statecore/internal/merkle"
	"github.com/rollupzk/statecore/rollup"
)

// PendingTransfer is a not-yet-applied transfer, addressed by tree index
// rather than by public key — a caller of this package is expected to
// already know them.
type PendingTransfer struct {
	SenderIndex   uint64
	ReceiverIndex uint64
	Tx            rollup.TransferTx
	Signature     babyjubjub.SignaturePacked
}

// PendingFile is a not-yet-applied file-storage-payment.
type PendingFile struct {
	SenderIndex uint64
	FileIndex   uint64
	Tx          rollup.FileTx
	Signature   babyjubjub.SignaturePacked
}

// PendingMining is a not-yet-applied mining submission.
type PendingMining struct {
	SenderIndex       uint64
	FileIndex         uint64
	ChunkIndex        uint64
	RandomOracleValue field.Element
	// ProofDataInFile authenticates DataInFile against the opened file's
	// per-file content tree. That tree lives outside AccountStore/FileStore
	// (spec.md §3: "a separate tree ... not materialized here"), so the
	// caller supplies its proof directly.
	ProofDataInFile merkle.Proof
	DataInFile      field.Element
	Tx              rollup.MiningTx
	Signature       babyjubjub.SignaturePacked
}

// BuildBlockWitness applies each pending operation to accounts/files in
// order (transfers, then files, then mining — mirroring rollup.Apply's own
// sequencing) mutating the stores in place, and assembles the resulting
// rollup.Block plus a full rollup.Witness against the stores' before/after
// roots: it reads an account, mutates local state, and records the
// witness fields for a single transaction inline with the state mutation,
// generalized here to run over an entire block of the three transaction
// kinds.
func BuildBlockWitness(
	accounts *AccountStore,
	files *FileStore,
	now field.Element,
	oracle rollup.RandomOracle,
	transfers []PendingTransfer,
	fileTxs []PendingFile,
	mines []PendingMining,
) (rollup.Witness, error) {
	oldAccRoot := accounts.Root()
	oldDataRoot := files.Root()

	block := rollup.Block{}

	for _, p := range transfers {
		sender, err := accounts.Get(p.SenderIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		proofSender := accounts.ProofAt(p.SenderIndex)

		// ApplyTransfer threads the receiver leg against the root left by
		// the sender leg (rollup.ApplyTransfer's root1), not the pre-slot
		// root — so the sender's new leaf has to land in the store, and
		// ProofReceiver has to be captured, before either is fixed in the
		// witness. Capturing both proofs up front against the same
		// pre-mutation root breaks whenever sender and receiver share a
		// sibling on their authentication paths.
		if !p.Signature.IsBlank() {
			newSenderBalance := field.Sub(sender.Balance, p.Tx.Amount)
			newSender := rollup.Account{}
			if !newSenderBalance.IsZero() {
				newSender = rollup.Account{
					Key:               sender.Key,
					Balance:           newSenderBalance,
					Nonce:             field.Add(p.Tx.Nonce, field.One()),
					RandomOracleNonce: sender.RandomOracleNonce,
				}
			}
			if err := accounts.Set(p.SenderIndex, newSender); err != nil {
				return rollup.Witness{}, err
			}
		}

		receiver, err := accounts.Get(p.ReceiverIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		proofReceiver := accounts.ProofAt(p.ReceiverIndex)

		slot := rollup.TransferSlot{
			Tx:              p.Tx,
			ProofSender:     proofSender,
			ProofReceiver:   proofReceiver,
			AccountSender:   sender,
			AccountReceiver: receiver,
			Signature:       p.Signature,
		}
		block.Transfers = append(block.Transfers, slot)

		if !p.Signature.IsBlank() {
			newReceiver := rollup.Account{
				Key:               p.Tx.ReceiverKey,
				Balance:           field.Add(receiver.Balance, p.Tx.Amount),
				Nonce:             receiver.Nonce,
				RandomOracleNonce: receiver.RandomOracleNonce,
			}
			if err := accounts.Set(p.ReceiverIndex, newReceiver); err != nil {
				return rollup.Witness{}, err
			}
		}
	}

	for _, p := range fileTxs {
		sender, err := accounts.Get(p.SenderIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		proofSender := accounts.ProofAt(p.SenderIndex)

		// Unlike the transfer's two legs, ApplyFile threads the sender leg
		// against accRoot and the file leg against dataRoot independently —
		// they live in different trees, so there is no shared-sibling
		// hazard here. The sender leg is still applied before the file
		// proof is captured, mirroring rollup.Apply's own sender-then-rest
		// ordering.
		if !p.Signature.IsBlank() {
			fee := field.Mul(rollup.FilePrice, p.Tx.TimeInterval)
			newSenderBalance := field.Sub(sender.Balance, fee)
			newSender := rollup.Account{}
			if !newSenderBalance.IsZero() {
				newSender = rollup.Account{
					Key:               sender.Key,
					Balance:           newSenderBalance,
					Nonce:             field.Add(p.Tx.Nonce, field.One()),
					RandomOracleNonce: sender.RandomOracleNonce,
				}
			}
			if err := accounts.Set(p.SenderIndex, newSender); err != nil {
				return rollup.Witness{}, err
			}
		}

		file, err := files.Get(p.FileIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		proofFile := files.ProofAt(p.FileIndex)

		slot := rollup.FileSlot{
			Tx:            p.Tx,
			ProofSender:   proofSender,
			ProofFile:     proofFile,
			AccountSender: sender,
			File:          file,
			Signature:     p.Signature,
		}
		block.Files = append(block.Files, slot)

		if !p.Signature.IsBlank() {
			baseExpiration := file.ExpirationTime
			if field.Lt(baseExpiration, now) {
				baseExpiration = now
			}
			newData := file.Data
			if !p.Tx.Data.IsZero() {
				newData = p.Tx.Data
			}
			newFile := rollup.File{
				ExpirationTime: field.Add(baseExpiration, p.Tx.TimeInterval),
				Owner:          sender.Key,
				Data:           newData,
			}
			if err := files.Set(p.FileIndex, newFile); err != nil {
				return rollup.Witness{}, err
			}
		}
	}

	for _, p := range mines {
		sender, err := accounts.Get(p.SenderIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		file, err := files.Get(p.FileIndex)
		if err != nil {
			return rollup.Witness{}, err
		}
		slot := rollup.MiningSlot{
			Tx:                p.Tx,
			ProofSender:       accounts.ProofAt(p.SenderIndex),
			AccountSender:     sender,
			RandomOracleValue: p.RandomOracleValue,
			ProofFile:         files.ProofAt(p.FileIndex),
			File:              file,
			ProofDataInFile:   p.ProofDataInFile,
			DataInFile:        p.DataInFile,
			Signature:         p.Signature,
		}
		block.Mines = append(block.Mines, slot)

		if !p.Signature.IsBlank() {
			newSender := rollup.Account{
				Key:               sender.Key,
				Balance:           field.Add(sender.Balance, rollup.MiningReward),
				Nonce:             field.Add(p.Tx.Nonce, field.One()),
				RandomOracleNonce: p.Tx.RandomOracleNonce,
			}
			if err := accounts.Set(p.SenderIndex, newSender); err != nil {
				return rollup.Witness{}, err
			}
		}
	}

	newAccRoot := accounts.Root()
	newDataRoot := files.Root()

	witness := rollup.Witness{
		Public: rollup.PublicInput{
			OldRoot: rollup.Root{Acc: oldAccRoot, Data: oldDataRoot}.Hash(),
			NewRoot: rollup.Root{Acc: newAccRoot, Data: newDataRoot}.Hash(),
			Now:     now,
			Oracle:  oracle,
		},
		OldRootRecord: rollup.Root{Acc: oldAccRoot, Data: oldDataRoot},
		NewRootRecord: rollup.Root{Acc: newAccRoot, Data: newDataRoot},
		Block:         block,
	}
	return witness, nil
}
