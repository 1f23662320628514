// Package storage provides an S3-compatible object storage client.
//
// Device configuration snapshots can optionally be mirrored to a bucket in
// addition to the local git-tracked copies. The Client interface covers
// exactly the operations the sync features need, which keeps tests on a
// small hand-written mock (see the mocks subpackage).
package storage
