// Package seqcode provides the nucleotide encoding, reverse-complement and
// in-frame translation primitives shared by the graph, seed adapter and
// emitter. The symbol table and the reverse-complement rule are taken
// verbatim from the dna_map/Comp/RevComp routines of the original search
// engine this package replaces.
package seqcode

import (
	"strings"

	searcherrors "github.com/HKU-BAL/megagta/internal/errors"
)

// dnaCode holds the per-byte graph symbol code, indexed directly by the
// input byte. A value of 0 marks a byte as not part of the DNA alphabet.
// Codes run 1..4; note that N (and n) deliberately collides with G's code,
// matching the original dna_map table instead of giving N its own code.
var dnaCode [256]byte

func init() {
	const bases = "ACGTNacgtn"
	const codes = "1234312343"
	for i := 0; i < len(bases); i++ {
		dnaCode[bases[i]] = codes[i] - '0'
	}
}

// Encode maps a raw nucleotide byte to its graph symbol code (1..4). It
// reports InvalidAlphabet for any byte outside A,C,G,T,N (either case).
func Encode(b byte) (byte, error) {
	code := dnaCode[b]
	if code == 0 {
		return 0, searcherrors.New("seqcode.Encode", searcherrors.InvalidAlphabet,
			"byte not in the DNA alphabet")
	}
	return code, nil
}

// decodeLetter maps a graph symbol code (1..4) back to its lowercase
// nucleotide letter, mirroring the "acgt-" unpacking table the original
// emitter used for nucl_emission.
var decodeLetter = [5]byte{0, 'a', 'c', 'g', 't'}

// Decode returns the lowercase nucleotide letter for graph symbol code.
// Code 0 (no edge consumed, i.e. a delete) decodes to the '-' sentinel.
func Decode(code byte) byte {
	if code == 0 || int(code) >= len(decodeLetter) {
		return '-'
	}
	return decodeLetter[code]
}

// EncodeKmer encodes every byte of word into its graph symbol code. Used to
// build the fixed-size key the graph's index_of expects.
func EncodeKmer(word []byte) ([]byte, error) {
	out := make([]byte, len(word))
	for i, b := range word {
		code, err := Encode(b)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}

// comp returns the Watson-Crick complement of a single nucleotide byte. The
// delete sentinel '-' complements to itself, matching the emitter's need to
// pass emitted sequences (which may still carry delete markers) through
// RevComp.
func comp(c byte) byte {
	switch c {
	case 'A', 'a':
		return 't'
	case 'C', 'c':
		return 'g'
	case 'G', 'g':
		return 'c'
	case 'T', 't':
		return 'a'
	case 'N', 'n':
		return 'n'
	case '-':
		return '-'
	default:
		return 'n'
	}
}

// RevComp returns the reverse complement of a nucleotide string.
func RevComp(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[len(s)-1-i] = comp(s[i])
	}
	return string(b)
}

// codonTable maps an in-frame codon to its single-letter amino acid code.
// Stop codons translate to '*'. Only upper-case codons are looked up;
// callers normalize case before translating.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// Translate translates nucl in-frame, three bases at a time, stopping at
// the last full codon (a trailing partial codon is dropped, matching the
// original's NTSequence.begin()+len/3*3 truncation). Lower-case input is
// upper-cased first; an unrecognized codon (e.g. one containing 'N')
// translates to 'X'.
func Translate(nucl string) string {
	nucl = strings.ToUpper(nucl)
	n := (len(nucl) / 3) * 3
	out := make([]byte, 0, n/3)
	for i := 0; i+3 <= n; i += 3 {
		aa, ok := codonTable[nucl[i:i+3]]
		if !ok {
			aa = 'X'
		}
		out = append(out, aa)
	}
	return string(out)
}
