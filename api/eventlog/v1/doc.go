// Package eventlogv1 holds the generated protobuf messages and gRPC service
// for eventlog/v1/eventlog.proto.
//
// Regenerate from the api/ directory with:
//
//	protoc -I . --go_out=. --go_opt=paths=source_relative \
//	    --go-grpc_out=. --go-grpc_opt=paths=source_relative \
//	    eventlog/v1/eventlog.proto
package eventlogv1

//go:generate protoc -I ../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative eventlog/v1/eventlog.proto
