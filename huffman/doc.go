// Copyright 2014-2025 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package huffman provides the Huffman coder of the bwsz pipeline.

A Tree is built from the byte frequencies of the data to encode. The tree
depends only on the frequency table: ties between nodes of equal frequency
are broken by the order of creation, leaves first in ascending byte order.
A decoder that receives the frequency table therefore rebuilds exactly the
tree the encoder used.

The code of a byte is the path from the root to its leaf, where a step to
the left child is a 0 bit and a step to the right child is a 1 bit. A tree
with a single leaf assigns the code "0" to its only byte.

Encoded bits are stored in a Bits value, which keeps the exact number of
bits, so that padding bits of the last byte are never decoded.
*/
package huffman
