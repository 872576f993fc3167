package docfs

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

const dialTimeout = 15 * time.Second

// SshClientCache keeps open ssh clients keyed by endpoint. When the cache is
// full the least recently used client is closed.
type SshClientCache struct {
	data             map[SshEndpt]*SshClientCacheEntry
	max              int
	lock             sync.Mutex
	keyfilePasswords map[string]string
	sshHopPasswords  map[SshHop]string
	keyfileAuths     []ssh.AuthMethod
	keys             map[string][]byte

	// dial opens a new client. It is replaced in tests.
	dial func(endpt SshEndpt) (*ssh.Client, error)
}

func NewSshClientCache(max int) *SshClientCache {
	if max < 1 {
		max = 1
	}
	c := &SshClientCache{
		data:             make(map[SshEndpt]*SshClientCacheEntry),
		max:              max,
		keyfilePasswords: map[string]string{},
		sshHopPasswords:  map[SshHop]string{},
		keys:             map[string][]byte{},
	}
	c.dial = c.dialEndpt
	return c
}

func (cache *SshClientCache) Get(endpt SshEndpt) (client *ssh.Client, err error) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	endpt.Dest = completeHop(endpt.Dest)
	if endpt.HasProxy() {
		endpt.Proxy = completeHop(endpt.Proxy)
	}

	if e, ok := cache.data[endpt]; ok {
		e.lastUsed = time.Now()
		return e.client, nil
	}

	client, err = cache.add(endpt)
	return client, prefixWithSshEndpt(endpt, "SshClientCache.Get", err)
}

// Invalidate closes and forgets the client for endpt, so the next Get
// reconnects.
func (cache *SshClientCache) Invalidate(endpt SshEndpt) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	endpt.Dest = completeHop(endpt.Dest)
	if endpt.HasProxy() {
		endpt.Proxy = completeHop(endpt.Proxy)
	}
	cache.remove(endpt)
}

func prefixWithSshEndpt(endpt SshEndpt, msg string, err error) error {
	if err == nil {
		return nil
	}
	if msg != "" {
		return fmt.Errorf("%s: %s: %w", endpt, msg, err)
	}
	return fmt.Errorf("%s: %w", endpt, err)
}

func (cache *SshClientCache) add(endpt SshEndpt) (client *ssh.Client, err error) {
	if len(cache.data) >= cache.max {
		cache.rmLeastRecentlyUsed()
	}

	client, err = cache.dial(endpt)
	if err != nil {
		return nil, err
	}

	cache.data[endpt] = &SshClientCacheEntry{client: client, lastUsed: time.Now()}
	return
}

func (cache *SshClientCache) rmLeastRecentlyUsed() {
	var minK SshEndpt
	var minTime time.Time
	for k, v := range cache.data {
		if minTime.IsZero() || v.lastUsed.Before(minTime) {
			minTime = v.lastUsed
			minK = k
		}
	}

	cache.remove(minK)
}

func (cache *SshClientCache) remove(endpt SshEndpt) {
	e, ok := cache.data[endpt]
	if !ok {
		return
	}
	dbg("SshClientCache: closing client for %s", endpt)
	if e.client != nil {
		e.client.Close()
	}
	delete(cache.data, endpt)
}

func (cache *SshClientCache) dialEndpt(endpt SshEndpt) (client *ssh.Client, err error) {
	dbg("SshClientCache: creating new ssh client for %s", endpt)

	destConf := &ssh.ClientConfig{
		User:            endpt.Dest.User,
		Auth:            cache.getAuths(endpt.Dest),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}
	addr := net.JoinHostPort(endpt.Dest.Host, endpt.Dest.Port)

	if !endpt.HasProxy() {
		return ssh.Dial("tcp", addr, destConf)
	}

	proxyConf := &ssh.ClientConfig{
		User:            endpt.Proxy.User,
		Auth:            cache.getAuths(endpt.Proxy),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}
	proxyAddr := net.JoinHostPort(endpt.Proxy.Host, endpt.Proxy.Port)
	return dialWithProxy(addr, destConf, proxyAddr, proxyConf)
}

func dialWithProxy(addr string, conf *ssh.ClientConfig, proxyAddr string, proxyConf *ssh.ClientConfig) (*ssh.Client, error) {
	proxyClient, err := ssh.Dial("tcp", proxyAddr, proxyConf)
	if err != nil {
		return nil, err
	}

	conn, err := proxyClient.Dial("tcp", addr)
	if err != nil {
		proxyClient.Close()
		return nil, err
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, addr, conf)
	if err != nil {
		conn.Close()
		proxyClient.Close()
		return nil, err
	}

	return ssh.NewClient(ncc, chans, reqs), nil
}

func completeHop(h SshHop) SshHop {
	if h.Host == "" {
		return h
	}
	if h.User == "" {
		if runtime.GOOS == "windows" {
			h.User = os.Getenv("USERNAME")
		} else {
			h.User = os.Getenv("USER")
		}
	}

	if h.Port == "" {
		h.Port = "22"
	}

	return h
}

func (cache *SshClientCache) getAuths(hop SshHop) []ssh.AuthMethod {
	auths := cache.getKeyfileAuths()
	if pw, ok := cache.sshHopPasswords[hop]; ok {
		dbg("Found password for ssh hop %v", hop)
		auths = append(auths[:len(auths):len(auths)], ssh.Password(pw))
	}
	return auths
}

func (cache *SshClientCache) SetSshHopPassword(user, host, port, password string) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	h := completeHop(SshHop{User: user, Host: host, Port: port})
	cache.sshHopPasswords[h] = password
}

func (cache *SshClientCache) SetKeyfilePassword(filename, password string) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	cache.keyfilePasswords[filename] = password
	cache.keyfileAuths = nil
}

func (cache *SshClientCache) AddKeyFromFile(filename string, path string) error {
	key, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cache.lock.Lock()
	defer cache.lock.Unlock()

	cache.keys[filename] = key
	cache.keyfileAuths = nil
	return nil
}

func (cache *SshClientCache) getKeyfileAuths() []ssh.AuthMethod {
	if cache.keyfileAuths == nil {
		cache.makeKeyfileAuths()
	}
	return cache.keyfileAuths
}

func (cache *SshClientCache) makeKeyfileAuths() {
	dbg("SshClientCache: building auths")

	signers, err := sshAgentSigners()
	if err != nil {
		dbg("SshClientCache: no agent signers: %v", err)
	}

	for fname, key := range cache.keys {
		s, err := cache.signerForKey(fname, key)
		if err != nil {
			dbg("SshClientCache: skipping key %s: %v", fname, err)
			continue
		}
		signers = append(signers, s)
	}

	cache.keyfileAuths = []ssh.AuthMethod{ssh.PublicKeys(signers...)}
}

func (cache *SshClientCache) signerForKey(filename string, key []byte) (ssh.Signer, error) {
	if pw, ok := cache.keyfilePasswords[filename]; ok {
		dbg("Decoding key %s using password", filename)
		return ssh.ParsePrivateKeyWithPassphrase(key, []byte(pw))
	}
	dbg("Decoding key %s without password", filename)
	return ssh.ParsePrivateKey(key)
}

func sshAgentSigners() ([]ssh.Signer, error) {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil, fmt.Errorf("SSH_AUTH_SOCK is not set")
	}
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, err
	}

	dbg("Adding keys from ssh agent (SSH_AUTH_SOCK)")
	return agent.NewClient(conn).Signers()
}

// Keys returns the endpoints that currently have a cached client.
func (cache *SshClientCache) Keys() []SshEndpt {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	keys := make([]SshEndpt, 0, len(cache.data))
	for k := range cache.data {
		keys = append(keys, k)
	}
	return keys
}

// Close closes every cached client.
func (cache *SshClientCache) Close() {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	for k := range cache.data {
		cache.remove(k)
	}
}

type SshEndpt struct {
	Dest  SshHop
	Proxy SshHop
}

func (k SshEndpt) HasProxy() bool {
	return k.Proxy.Host != ""
}

func (k SshEndpt) String() string {
	if k.HasProxy() {
		return fmt.Sprintf("%s@%s:%s%%%s@%s:%s",
			k.Dest.User, k.Dest.Host, k.Dest.Port,
			k.Proxy.User, k.Proxy.Host, k.Proxy.Port,
		)
	}
	return fmt.Sprintf("%s@%s:%s", k.Dest.User, k.Dest.Host, k.Dest.Port)
}

type SshHop struct {
	User, Host, Port string
}

type SshClientCacheEntry struct {
	client   *ssh.Client
	lastUsed time.Time
}
