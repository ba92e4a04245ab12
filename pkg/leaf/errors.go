package leaf

import "errors"

// ErrBucketExceeded is the fatal misconfiguration signalled when a split
// (mutable or bulk-build) cannot produce a valid partition because more
// than the bucket capacity shares the same coordinate on the split axis
// (spec §4.2 step 3, §4.6). It mirrors the teacher's ErrNodeFull in
// spirit: a returned error, never a panic.
var ErrBucketExceeded = errors.New("leaf: bucket size exceeded by duplicate coordinates on split axis")
