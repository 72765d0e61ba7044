package game

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- ChannelConnection ---

type MockChannelConnection struct {
	mock.Mock
}

func (m *MockChannelConnection) Close(errCode string) {
	m.Called(errCode)
}

func (m *MockChannelConnection) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockChannelConnection) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChannelConnection) Ping() error {
	args := m.Called()
	return args.Error(0)
}

// --- WordPicker ---

type MockWordPicker struct {
	mock.Mock
}

func (m *MockWordPicker) Pick() string {
	args := m.Called()
	return args.String(0)
}

// --- UniqueIdGenerator ---

type MockUniqueIdGenerator struct {
	mock.Mock
}

func (m *MockUniqueIdGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockUniqueIdGenerator) Dispose(id string) {
	m.Called(id)
}

// --- PeriodicTickerChannelCreator ---

type MockPeriodicTickerChannelCreator struct {
	mock.Mock
}

func (m *MockPeriodicTickerChannelCreator) Create(duration time.Duration) <-chan time.Time {
	args := m.Called(duration)
	return args.Get(0).(chan time.Time)
}

// --- Subscriber ---

type MockSubscriber struct {
	mock.Mock
}

func (m *MockSubscriber) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSubscriber) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSubscriber) Send(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockSubscriber) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSubscriber) SetRoom(r Room) {
	m.Called(r)
}

func (m *MockSubscriber) CancelAndRelease() {
	m.Called()
}

// --- Room ---

type MockRoom struct {
	mock.Mock
}

func (m *MockRoom) GameLoop() {
	m.Called()
}

func (m *MockRoom) Submit(ev Event) {
	m.Called(ev)
}

func (m *MockRoom) RequestJoin(jreq roomJoinRequest) {
	m.Called(jreq)
}

func (m *MockRoom) RequestRemoval(sub Subscriber) {
	m.Called(sub)
}

func (m *MockRoom) Tick(now time.Time) {
	m.Called(now)
}

func (m *MockRoom) PingPlayers() {
	m.Called()
}

func (m *MockRoom) SetParentLobby(l Lobby) {
	m.Called(l)
}

func (m *MockRoom) SetId(id string) {
	m.Called(id)
}

func (m *MockRoom) Id() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRoom) CloseAndRelease() {
	m.Called()
}

// --- Lobby ---

type MockLobby struct {
	mock.Mock
}

func (m *MockLobby) RequestAddAndRunRoom(ctx context.Context, r Room) {
	m.Called(ctx, r)
}

func (m *MockLobby) ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest) {
	m.Called(ctx, jreq)
}

func (m *MockLobby) RemoveRoom(gameID string) {
	m.Called(gameID)
}
