package live

// ClientScript mirrors the surface into the page. It replaces the root on
// every reset frame, applies patch frames in order and reports clicks on
// elements marked with data-on-click.
const ClientScript = `
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;
    var seq = 0;

    function byHID(hid) {
        return document.querySelector('[data-hid="' + hid + '"]');
    }

    function fromHTML(html) {
        var t = document.createElement('template');
        t.innerHTML = html;
        return t.content.firstChild;
    }

    function apply(f) {
        var el = f.hid ? byHID(f.hid) : null;
        switch (f.op) {
            case 'insert':
                var parent = byHID(f.parent);
                if (parent) parent.insertBefore(fromHTML(f.html), parent.children[f.index] || null);
                break;
            case 'move':
                var target = byHID(f.parent);
                if (el && target) target.insertBefore(el, target.children[f.index] || null);
                break;
            case 'remove':
                if (el) el.remove();
                break;
            case 'replace':
                if (el) el.replaceWith(fromHTML(f.html));
                break;
            case 'attr':
                if (el) el.setAttribute(f.key, f.value);
                break;
            case 'rmattr':
                if (el) el.removeAttribute(f.key);
                break;
            case 'text':
                if (el) el.textContent = f.value;
                break;
        }
    }

    function reset(html) {
        var fresh = fromHTML(html);
        var current = fresh && byHID(fresh.getAttribute('data-hid'));
        if (current) {
            current.replaceWith(fresh);
        } else if (fresh) {
            document.body.insertBefore(fresh, document.body.firstChild);
        }
        seq = 0;
    }

    document.addEventListener('click', function(e) {
        var el = e.target.closest('[data-on-click]');
        if (!el || !ws || ws.readyState !== WebSocket.OPEN) return;
        ws.send(JSON.stringify({type: 'event', hid: el.getAttribute('data-hid'), event: 'click'}));
    });

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/_toast/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'reset') {
                reset(msg.html);
                return;
            }
            if (msg.type === 'patches') {
                if (msg.seq !== seq + 1) {
                    ws.close();
                    return;
                }
                seq = msg.seq;
                (msg.patches || []).forEach(apply);
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
`
