package grpcapi

import (
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc/credentials"
)

// LoadServerCredentials loads a server certificate/key pair and returns
// gRPC transport credentials, adapted from the teacher's certificate
// loading (pkg/security/certs.go) down to the single key pair this
// transport actually needs — no client-certificate verification, since
// the supervisor has no multi-node cluster to authenticate peers in.
func LoadServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("grpcapi: load TLS key pair: %w", err)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
	}), nil
}
