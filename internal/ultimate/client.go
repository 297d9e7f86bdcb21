// Package ultimate talks to a C64 Ultimate's network services. The Web
// Remote Control Service must be enabled in the hardware configuration.
package ultimate

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxProgramSize is the device address space; a PRG whose load address
// plus size crosses it cannot be run.
const maxProgramSize = 65536

// runnerByExt maps content types to the hardware runner endpoints.
var runnerByExt = map[string]string{
	"prg": "/v1/runners:run_prg",
	"crt": "/v1/runners:run_crt",
	"sid": "/v1/runners:sidplay",
	"mod": "/v1/runners:modplay",
}

// mountExts are the image formats the hardware mounts natively.
var mountExts = map[string]bool{
	"d64": true, "g64": true,
	"d71": true, "g71": true,
	"d81": true,
}

// Device is one drive slot in the hardware's drive list.
type Device struct {
	Enabled    bool    `json:"enabled"`
	BusID      uint8   `json:"bus_id"`
	DeviceType *string `json:"type"`
	ROM        *string `json:"rom"`
	ImageFile  *string `json:"image_file"`
	ImagePath  *string `json:"image_path"`
}

// DriveList is the response shape of the /v1/drives endpoint.
type DriveList struct {
	Drives []map[string]Device `json:"drives"`
}

// Client issues requests against one C64 Ultimate.
type Client struct {
	ip   string
	http *http.Client
}

// NewClient creates a client for the hardware at ip.
func NewClient(ip string) *Client {
	return &Client{
		ip:   ip,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsAvailable checks whether the hardware's web service answers.
func IsAvailable(ip string) bool {
	if ip == "" {
		return false
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ip + "/v1/drives")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Run loads a content file through the hardware runner selected by its
// extension. A bare filename with no extension is treated as a PRG.
func (c *Client) Run(filename string) error {
	ext := lowerExt(filename)
	if ext == "" {
		ext = "prg"
	}
	url, ok := runnerByExt[ext]
	if !ok {
		return fmt.Errorf("file extension not recognized: %s", filename)
	}
	if ext == "prg" {
		if err := checkProgramFits(filename); err != nil {
			return err
		}
	}
	return c.post(url, filename)
}

// Mount attaches a disk image to one of the hardware drives.
func (c *Client) Mount(drive, image string) error {
	ext := lowerExt(image)
	if !mountExts[ext] {
		return fmt.Errorf("unrecognized disk image file type: %s", image)
	}
	url := fmt.Sprintf("/v1/drives/%smount?type=%s", drive, ext)
	return c.post(url, image)
}

// Drives fetches the hardware drive list.
func (c *Client) Drives() (*DriveList, error) {
	resp, err := c.http.Get("http://" + c.ip + "/v1/drives")
	if err != nil {
		return nil, fmt.Errorf("drive settings request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive settings request failed: %s", resp.Status)
	}

	var list DriveList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode drive settings: %w", err)
	}
	return &list, nil
}

// post uploads a local file to one of the hardware endpoints.
func (c *Client) post(url, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	resp, err := c.http.Post("http://"+c.ip+url, "application/octet-stream", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("web request failed: %s%s: %w", c.ip, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("web request failed: %s%s: %s", c.ip, url, resp.Status)
	}
	return nil
}

// checkProgramFits reads the PRG's little-endian load address and
// verifies the program stays within the device address space.
func checkProgramFits(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	var addr uint16
	if err := binary.Read(f, binary.LittleEndian, &addr); err != nil {
		return fmt.Errorf("failed to read load address: %w", err)
	}
	if stat.Size()+int64(addr) >= maxProgramSize {
		return fmt.Errorf("PRG file is too large: %s", filename)
	}
	return nil
}

func lowerExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
