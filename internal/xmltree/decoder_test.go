package xmltree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleHostXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE nmaprun>
<nmaprun scanner="nmap" args="nmap -O 10.0.0.5">
  <host>
    <status state="up" reason="echo-reply"/>
    <address addr="10.0.0.5" addrtype="ipv4"/>
    <ports>
      <port protocol="tcp" portid="22">
        <state state="open" reason="syn-ack"/>
        <service name="ssh" product="OpenSSH" version="8.9p1"/>
      </port>
    </ports>
  </host>
</nmaprun>`

const twoHostXML = `<nmaprun>
  <host><address addr="10.0.0.1" addrtype="ipv4"/><address addr="AA:BB:CC:DD:EE:FF" addrtype="mac"/></host>
  <host><address addr="10.0.0.2" addrtype="ipv4"/></host>
</nmaprun>`

func TestDecode_SingleChildCollapses(t *testing.T) {
	doc, err := Decode([]byte(singleHostXML))
	require.NoError(t, err)

	run, ok := doc["nmaprun"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "nmap", run["@scanner"])

	host, ok := run["host"].(map[string]interface{})
	require.True(t, ok, "single host should not be wrapped in a list")

	address, ok := host["address"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "10.0.0.5", address["@addr"])
	assert.Equal(t, "ipv4", address["@addrtype"])

	ports := host["ports"].(map[string]interface{})
	port, ok := ports["port"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "22", port["@portid"])
	service := port["service"].(map[string]interface{})
	assert.Equal(t, "OpenSSH", service["@product"])
}

func TestDecode_RepeatedSiblingsBecomeList(t *testing.T) {
	doc, err := Decode([]byte(twoHostXML))
	require.NoError(t, err)

	run := doc["nmaprun"].(map[string]interface{})
	hosts, ok := run["host"].([]interface{})
	require.True(t, ok)
	require.Len(t, hosts, 2)

	first := hosts[0].(map[string]interface{})
	addresses, ok := first["address"].([]interface{})
	require.True(t, ok)
	assert.Len(t, addresses, 2)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Decode([]byte("  \n\t "))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Decode([]byte("<nmaprun><host></nmaprun>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode scan XML")
}

func TestDecode_Latin1(t *testing.T) {
	raw := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><nmaprun><host><hostnames><hostname name=\"caf\xe9\"/></hostnames></host></nmaprun>"

	doc, err := Decode([]byte(raw))
	require.NoError(t, err)

	run := doc["nmaprun"].(map[string]interface{})
	host := run["host"].(map[string]interface{})
	hostnames := host["hostnames"].(map[string]interface{})
	hostname := hostnames["hostname"].(map[string]interface{})
	assert.Equal(t, "café", hostname["@name"])
}

func TestDecodeReader(t *testing.T) {
	doc, err := DecodeReader(strings.NewReader(twoHostXML))
	require.NoError(t, err)
	assert.Contains(t, doc, "nmaprun")
}
