package btree

import "tlog.app/go/errors"

var INVALID_DEGREE_ERROR = errors.New("Invalid degree. Degree must not be less than 2")
var NIL_COMPARE_ERROR = errors.New("Compare function must not be nil")
var INVALID_ITERATOR_ERROR = errors.New("Iterator invalidated by a tree mutation")

// Returned by Check.
var UNORDERED_KEYS_ERROR = errors.New("Keys are not in ascending order")
var KEY_RANGE_ERROR = errors.New("Key is outside of the range of its parent separators")
var NODE_OCCUPANCY_ERROR = errors.New("Node entry count is out of bounds")
var CHILD_COUNT_ERROR = errors.New("Internal node child count must be entry count + 1")
var UNBALANCED_TREE_ERROR = errors.New("Leaves are not at the same depth")
var SIZE_MISMATCH_ERROR = errors.New("Entry count does not match tree length")
