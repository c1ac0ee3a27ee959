// Package client wires a Moonlit session together: a world streaming chunks
// around a camera, the generator selected for the session's seed and the
// collaborators that draw chunks and supply input.
package client

import (
	"log/slog"

	"github.com/PizzaLvr49/moonlit/client/camera"
	"github.com/PizzaLvr49/moonlit/client/world"
	"github.com/google/uuid"
)

// Client is a single session of the Moonlit client. It owns the world and the
// camera that chunks are streamed around. A Client is safe for concurrent use.
type Client struct {
	conf Config
	id   uuid.UUID
	seed uint64
	log  *slog.Logger

	world  *world.World
	camera *camera.Controller
}

// ID returns the unique ID of the session.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Seed returns the seed of the session's world.
func (c *Client) Seed() uint64 {
	return c.seed
}

// World returns the world of the session.
func (c *Client) World() *world.World {
	return c.world
}

// Camera returns the camera that the world's chunks are streamed around.
func (c *Client) Camera() *camera.Controller {
	return c.camera
}

// Close closes the world of the session, unloading all of its chunks. Close
// may be called multiple times.
func (c *Client) Close() error {
	if err := c.world.Close(); err != nil {
		c.log.Error("close world: " + err.Error())
		return err
	}
	c.log.Debug("Session closed.")
	return nil
}
