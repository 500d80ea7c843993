package ssh

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/eniac111/plumbcfg/internal/types"
)

// Client is an authenticated command and file-transfer channel to one
// remote host.
type Client struct {
	conn *ssh.Client
}

// Connect opens an SSH connection to the host using password auth.
func Connect(host types.Host) (*Client, error) {
	config := &ssh.ClientConfig{
		User:            host.User,
		Auth:            []ssh.AuthMethod{ssh.Password(host.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // DO NOT USE IN PRODUCTION
	}

	port := host.Port
	if port == 0 {
		port = 22
	}
	addr := fmt.Sprintf("%s:%d", host.Name, port)

	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Execute runs a command on the remote host and returns its exit status
// along with captured stdout and stderr. A non-zero exit status is not
// an error; err is non-nil only when the command could not be
// dispatched or the transport failed.
func (c *Client) Execute(cmd string) (int, []byte, []byte, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return -1, nil, nil, err
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err := session.Run(cmd); err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitStatus(), stdout.Bytes(), stderr.Bytes(), nil
		}
		return -1, stdout.Bytes(), stderr.Bytes(), err
	}
	return 0, stdout.Bytes(), stderr.Bytes(), nil
}

// WriteFile uses SFTP to copy in-memory bytes to a remote file,
// truncating any existing content.
func (c *Client) WriteFile(path string, content []byte) error {
	sftpClient, err := sftp.NewClient(c.conn)
	if err != nil {
		return err
	}
	defer sftpClient.Close()

	dstFile, err := sftpClient.Create(path)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = dstFile.Write(content)
	return err
}

// Close shuts down the underlying SSH connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
