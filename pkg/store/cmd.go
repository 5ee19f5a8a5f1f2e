package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
	. "src.frdlisp.dev/pkg/store/storedefs"
)

// Inputs are keyed by their big-endian sequence number, so that cursor order
// is submission order.
const bucketCmd = "cmd"

func init() {
	initDB["initialize command history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

func cmds(tx *bolt.Tx) *bolt.Bucket { return tx.Bucket([]byte(bucketCmd)) }

// NextCmdSeq returns the sequence number the next input will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		seq = cmds(tx).Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends an input to the history and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := cmds(tx)
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// DelCmd deletes the input with the given sequence number. Deleting a missing
// entry is not an error.
func (s *dbStore) DelCmd(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return cmds(tx).Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd returns the input with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := cmds(tx).Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns all inputs with sequence numbers in [from, upto).
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var result []Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmds(tx).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			cmd := toCmd(k, v)
			if cmd.Seq >= upto {
				break
			}
			result = append(result, cmd)
		}
		return nil
	})
	return result, err
}

// NextCmd finds the first input at or after from that starts with prefix.
func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmds(tx).Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = toCmd(k, v)
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last input before upto that starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := cmds(tx).Cursor()
		var k, v []byte
		if k, _ = c.Seek(marshalSeq(uint64(upto))); k == nil {
			// Everything is before upto.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = toCmd(k, v)
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func toCmd(k, v []byte) Cmd {
	return Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
